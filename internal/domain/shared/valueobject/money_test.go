package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(1500))
		require.NoError(t, err)
		assert.Equal(t, DZD, m.Currency())
		assert.Equal(t, int64(1500), m.IntPart())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestNewMoneyFromInt_ClampsNegative(t *testing.T) {
	assert.True(t, NewMoneyFromInt(-10).IsZero())
}

func TestMoney_Arithmetic(t *testing.T) {
	line := NewMoneyFromInt(1500).MultiplyByInt(2)
	total := line.Add(NewMoneyFromInt(3000))

	assert.True(t, line.Equals(NewMoneyFromInt(3000)))
	assert.True(t, total.Equals(NewMoneyFromInt(6000)))
	assert.True(t, Zero().Add(Zero()).IsZero())
}

func TestMoney_Display(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"small whole amount", "500", "500 DZD"},
		{"grouped whole amount", "6500", "6,500 DZD"},
		{"fractional amount", "12.5", "12.50 DZD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Display())
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyFromInt(6500))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"6500","currency":"DZD","formatted":"6,500 DZD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(NewMoneyFromInt(6500)))

	err = json.Unmarshal([]byte(`{"amount":"1","currency":"EUR"}`), &decoded)
	assert.Error(t, err)
}
