package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/infrastructure/cache"
	"github.com/decora/storefront/tests/testutil"
)

// TestStorefrontFlow places an order with the catalog read from PostgreSQL
// and the session kept in Redis.
func TestStorefrontFlow(t *testing.T) {
	_, repo := seededRepository(t)
	client := NewTestRedis(t)

	sf, err := testutil.NewStorefront(testutil.Options{
		Store:  cache.NewRedisSessionStoreWithClient(client, "", time.Hour),
		Source: repo,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, sf.Close()) })

	token, err := sf.StartSession()
	require.NoError(t, err)

	qty := 2
	resp, err := sf.Do(http.MethodPost, "/api/v1/cart/items", token,
		storefront.AddToCartRequest{ProductID: 9, Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	resp, err = sf.Do(http.MethodPut, "/api/v1/checkout/form", token, map[string]any{
		"first_name":      "Amina",
		"last_name":       "Benali",
		"phone":           "0555123456",
		"wilaya_id":       16,
		"shipping_method": "doorToDoor",
		"address":         "12 Rue Larbi Ben M'hidi",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	resp, err = sf.Do(http.MethodPost, "/api/v1/checkout/submit", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.Code, string(resp.Body))
	require.NoError(t, sf.WaitForPlacement(10*time.Second))

	resp, err = sf.Do(http.MethodGet, "/api/v1/checkout", token, nil)
	require.NoError(t, err)
	co, err := testutil.DecodeData[storefront.CheckoutResponse](resp)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateComplete, co.State)
	require.NotNil(t, co.Confirmation)
	assert.Equal(t, testutil.TestOrderCode, co.Confirmation.OrderCode)
	assert.Equal(t, "1400", co.Confirmation.Total.Amount().String())

	resp, err = sf.Do(http.MethodGet, "/health/ready", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
}
