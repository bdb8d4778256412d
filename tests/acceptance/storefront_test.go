// Package acceptance runs the Gherkin scenarios under features/ against an
// in-process storefront.
package acceptance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	catalogapp "github.com/decora/storefront/internal/application/catalog"
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/tests/testutil"
)

type acceptanceContext struct {
	sf       *testutil.Storefront
	placer   *testutil.StaticPlacer
	token    string
	form     map[string]any
	response *testutil.Response
}

func (c *acceptanceContext) reset() {
	c.sf = nil
	c.placer = &testutil.StaticPlacer{}
	c.token = ""
	c.form = nil
	c.response = nil
}

func (c *acceptanceContext) close() error {
	if c.sf == nil {
		return nil
	}
	return c.sf.Close()
}

func (c *acceptanceContext) do(method, path string, body any) error {
	resp, err := c.sf.Do(method, path, c.token, body)
	if err != nil {
		return err
	}
	c.response = resp
	return nil
}

// ==================== Given ====================

func (c *acceptanceContext) aRunningStorefront() error {
	sf, err := testutil.NewStorefront(testutil.Options{Placer: c.placer})
	if err != nil {
		return err
	}
	c.sf = sf
	return nil
}

func (c *acceptanceContext) iHaveStartedASession() error {
	token, err := c.sf.StartSession()
	if err != nil {
		return err
	}
	c.token = token
	return nil
}

func (c *acceptanceContext) iHaveNoSession() error {
	c.token = ""
	return nil
}

func (c *acceptanceContext) orderPlacementFails() error {
	c.placer.Err = errors.New("carrier unavailable")
	return nil
}

// ==================== When ====================

func (c *acceptanceContext) iRequest(method, path string) error {
	return c.do(method, path, nil)
}

func (c *acceptanceContext) iAddProductToMyCart(quantity int, productID int64) error {
	return c.iAddProductInColorToMyCart(quantity, productID, "")
}

func (c *acceptanceContext) iAddProductInColorToMyCart(quantity int, productID int64, color string) error {
	return c.do(http.MethodPost, "/api/v1/cart/items", storefront.AddToCartRequest{
		ProductID: productID,
		Quantity:  &quantity,
		Color:     color,
	})
}

func (c *acceptanceContext) iSetTheQuantityOfTheFirstCartLine(quantity int) error {
	crt, err := c.cart()
	if err != nil {
		return err
	}
	if len(crt.Lines) == 0 {
		return errors.New("cart has no lines")
	}
	return c.do(http.MethodPatch, "/api/v1/cart/items/"+crt.Lines[0].ID.String(),
		storefront.UpdateCartItemRequest{Quantity: &quantity})
}

func (c *acceptanceContext) iFillInTheCheckoutForm(table *godog.Table) error {
	form := make(map[string]any, len(table.Rows))
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("form rows need a field and a value, got %d cells", len(row.Cells))
		}
		field, value := row.Cells[0].Value, row.Cells[1].Value
		if field == "wilaya_id" {
			id, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("wilaya_id %q: %w", value, err)
			}
			form[field] = id
			continue
		}
		form[field] = value
	}
	c.form = form
	return c.do(http.MethodPut, "/api/v1/checkout/form", form)
}

func (c *acceptanceContext) iSwitchToDelivery(method string) error {
	if c.form == nil {
		return errors.New("no checkout form filled in yet")
	}
	c.form["shipping_method"] = method
	return c.do(http.MethodPut, "/api/v1/checkout/form", c.form)
}

func (c *acceptanceContext) iSubmitMyOrder() error {
	return c.do(http.MethodPost, "/api/v1/checkout/submit", nil)
}

func (c *acceptanceContext) orderPlacementSettles() error {
	return c.sf.WaitForPlacement(5 * time.Second)
}

// ==================== Then ====================

func (c *acceptanceContext) theResponseStatusIs(status int) error {
	if c.response == nil {
		return errors.New("no request has been made")
	}
	if c.response.Code != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, c.response.Code, c.response.Body)
	}
	return nil
}

func (c *acceptanceContext) theErrorCodeIs(code string) error {
	if got := c.response.ErrorCode(); got != code {
		return fmt.Errorf("expected error code %q, got %q", code, got)
	}
	return nil
}

func (c *acceptanceContext) theListingReports(total, pages int) error {
	meta := c.response.Envelope.Meta
	if meta == nil {
		return errors.New("response carries no pagination meta")
	}
	if meta.Total != total || meta.TotalPages != pages {
		return fmt.Errorf("expected %d products across %d pages, got %d across %d",
			total, pages, meta.Total, meta.TotalPages)
	}
	return nil
}

func (c *acceptanceContext) listedProducts() ([]catalogapp.ProductResponse, error) {
	return testutil.DecodeData[[]catalogapp.ProductResponse](c.response)
}

func (c *acceptanceContext) thePageHolds(n int) error {
	products, err := c.listedProducts()
	if err != nil {
		return err
	}
	if len(products) != n {
		return fmt.Errorf("expected %d products on the page, got %d", n, len(products))
	}
	return nil
}

func (c *acceptanceContext) theListedProductIDsAre(ids string) error {
	products, err := c.listedProducts()
	if err != nil {
		return err
	}
	got := make([]string, len(products))
	for i, p := range products {
		got[i] = strconv.FormatInt(p.ID, 10)
	}
	if strings.Join(got, ",") != ids {
		return fmt.Errorf("expected product ids %q, got %q", ids, strings.Join(got, ","))
	}
	return nil
}

func (c *acceptanceContext) theListedProductAt(position string, id int64) error {
	products, err := c.listedProducts()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return errors.New("listing is empty")
	}
	p := products[0]
	if position == "last" {
		p = products[len(products)-1]
	}
	if p.ID != id {
		return fmt.Errorf("expected the %s product to be %d, got %d", position, id, p.ID)
	}
	return nil
}

func (c *acceptanceContext) theResponseListsEntries(n int) error {
	var entries []json.RawMessage
	if err := c.response.Decode(&entries); err != nil {
		return err
	}
	if len(entries) != n {
		return fmt.Errorf("expected %d entries, got %d", n, len(entries))
	}
	return nil
}

func (c *acceptanceContext) cart() (storefront.CartResponse, error) {
	resp, err := c.sf.Do(http.MethodGet, "/api/v1/cart", c.token, nil)
	if err != nil {
		return storefront.CartResponse{}, err
	}
	return testutil.DecodeData[storefront.CartResponse](resp)
}

func (c *acceptanceContext) myCartHolds(items, lines, subtotal int) error {
	crt, err := c.cart()
	if err != nil {
		return err
	}
	if crt.Count != items || len(crt.Lines) != lines {
		return fmt.Errorf("expected %d items in %d lines, got %d in %d", items, lines, crt.Count, len(crt.Lines))
	}
	if got := crt.Subtotal.Amount().String(); got != strconv.Itoa(subtotal) {
		return fmt.Errorf("expected subtotal %d, got %s", subtotal, got)
	}
	return nil
}

func (c *acceptanceContext) checkout() (storefront.CheckoutResponse, error) {
	resp, err := c.sf.Do(http.MethodGet, "/api/v1/checkout", c.token, nil)
	if err != nil {
		return storefront.CheckoutResponse{}, err
	}
	return testutil.DecodeData[storefront.CheckoutResponse](resp)
}

func (c *acceptanceContext) theOrderSummaryShows(subtotal, shipping, total int) error {
	co, err := testutil.DecodeData[storefront.CheckoutResponse](c.response)
	if err != nil {
		return err
	}
	got := []string{
		co.Summary.Subtotal.Amount().String(),
		co.Summary.Shipping.Amount().String(),
		co.Summary.Total.Amount().String(),
	}
	want := []string{strconv.Itoa(subtotal), strconv.Itoa(shipping), strconv.Itoa(total)}
	if strings.Join(got, "/") != strings.Join(want, "/") {
		return fmt.Errorf("expected subtotal/shipping/total %s, got %s", strings.Join(want, "/"), strings.Join(got, "/"))
	}
	return nil
}

func (c *acceptanceContext) theCheckoutStateIs(state string) error {
	co, err := c.checkout()
	if err != nil {
		return err
	}
	if string(co.State) != state {
		return fmt.Errorf("expected checkout state %s, got %s", state, co.State)
	}
	return nil
}

func (c *acceptanceContext) theSubmissionIsAcceptedAs(state string) error {
	co, err := testutil.DecodeData[storefront.CheckoutResponse](c.response)
	if err != nil {
		return err
	}
	if string(co.State) != state {
		return fmt.Errorf("expected the submission to answer %s, got %s", state, co.State)
	}
	return nil
}

func (c *acceptanceContext) theConfirmationCarriesOrderCode(code string) error {
	co, err := c.checkout()
	if err != nil {
		return err
	}
	if co.Confirmation == nil {
		return errors.New("checkout has no confirmation")
	}
	if co.Confirmation.OrderCode != code {
		return fmt.Errorf("expected order code %q, got %q", code, co.Confirmation.OrderCode)
	}
	return nil
}

func (c *acceptanceContext) theCheckoutNoticeReads(notice string) error {
	co, err := c.checkout()
	if err != nil {
		return err
	}
	if co.Notice != notice {
		return fmt.Errorf("expected notice %q, got %q", notice, co.Notice)
	}
	return nil
}

func (c *acceptanceContext) eventsWerePublished(n int, eventType string) error {
	ok := testutil.WaitForCondition(func() bool {
		return c.sf.Events.Count(eventType) == n
	}, time.Second, 10*time.Millisecond)
	if !ok {
		return fmt.Errorf("expected %d %s events, saw %v", n, eventType, c.sf.Events.Types())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &acceptanceContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, tc.close()
	})

	// Given steps
	ctx.Step(`^a running storefront$`, tc.aRunningStorefront)
	ctx.Step(`^I have started a session$`, tc.iHaveStartedASession)
	ctx.Step(`^I have no session$`, tc.iHaveNoSession)
	ctx.Step(`^order placement fails$`, tc.orderPlacementFails)

	// When steps
	ctx.Step(`^I (GET|POST|DELETE) "([^"]*)"$`, tc.iRequest)
	ctx.Step(`^I add (\d+) of product (\d+) to my cart$`, tc.iAddProductToMyCart)
	ctx.Step(`^I add (\d+) of product (\d+) in "([^"]*)" to my cart$`, tc.iAddProductInColorToMyCart)
	ctx.Step(`^I set the quantity of the first cart line to (\d+)$`, tc.iSetTheQuantityOfTheFirstCartLine)
	ctx.Step(`^I fill in the checkout form:$`, tc.iFillInTheCheckoutForm)
	ctx.Step(`^I switch to "([^"]*)" delivery$`, tc.iSwitchToDelivery)
	ctx.Step(`^I submit my order$`, tc.iSubmitMyOrder)
	ctx.Step(`^order placement settles$`, tc.orderPlacementSettles)

	// Then steps
	ctx.Step(`^the response status is (\d+)$`, tc.theResponseStatusIs)
	ctx.Step(`^the error code is "([^"]*)"$`, tc.theErrorCodeIs)
	ctx.Step(`^the listing reports (\d+) products across (\d+) pages$`, tc.theListingReports)
	ctx.Step(`^the page holds (\d+) products?$`, tc.thePageHolds)
	ctx.Step(`^the listed product ids are "([^"]*)"$`, tc.theListedProductIDsAre)
	ctx.Step(`^the (first|last) listed product is (\d+)$`, tc.theListedProductAt)
	ctx.Step(`^the response lists (\d+) entries$`, tc.theResponseListsEntries)
	ctx.Step(`^my cart holds (\d+) items? in (\d+) lines? with subtotal (\d+)$`, tc.myCartHolds)
	ctx.Step(`^the order summary shows subtotal (\d+), shipping (\d+) and total (\d+)$`, tc.theOrderSummaryShows)
	ctx.Step(`^the checkout state is "([^"]*)"$`, tc.theCheckoutStateIs)
	ctx.Step(`^the submission is accepted as "([^"]*)"$`, tc.theSubmissionIsAcceptedAs)
	ctx.Step(`^the confirmation carries order code "([^"]*)"$`, tc.theConfirmationCarriesOrderCode)
	ctx.Step(`^the checkout notice reads "([^"]*)"$`, tc.theCheckoutNoticeReads)
	ctx.Step(`^(\d+) "([^"]*)" events? (?:was|were) published$`, tc.eventsWerePublished)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
