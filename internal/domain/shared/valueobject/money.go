package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// DZD is the only currency the storefront prices in.
const DZD Currency = "DZD"

var displayPrinter = message.NewPrinter(language.English)

// Money is an immutable DZD amount
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errors.New("amount cannot be negative")
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromInt creates Money from a whole catalog amount
func NewMoneyFromInt(amount int64) Money {
	if amount < 0 {
		amount = 0
	}
	return Money{amount: decimal.NewFromInt(amount)}
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return DZD
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MultiplyByInt returns the amount multiplied by a quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// Equals compares two amounts
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IntPart returns the whole part of the amount
func (m Money) IntPart() int64 {
	return m.amount.IntPart()
}

// String returns the amount with its currency, e.g. "6500 DZD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), DZD)
}

// Display formats the amount with digit grouping, e.g. "6,500 DZD"
func (m Money) Display() string {
	if m.amount.Equal(m.amount.Truncate(0)) {
		return displayPrinter.Sprintf("%d %s", m.amount.IntPart(), DZD)
	}
	f, _ := m.amount.Round(2).Float64()
	return displayPrinter.Sprintf("%.2f %s", f, DZD)
}

type moneyJSON struct {
	Amount    string   `json:"amount"`
	Currency  Currency `json:"currency"`
	Formatted string   `json:"formatted,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:    m.amount.String(),
		Currency:  DZD,
		Formatted: m.Display(),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Currency != "" && v.Currency != DZD {
		return fmt.Errorf("unsupported currency: %s", v.Currency)
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	return nil
}
