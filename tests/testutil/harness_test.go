package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/session"
)

func TestStorefrontHarness(t *testing.T) {
	sf, err := NewStorefront(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, sf.Close()) })

	token, err := sf.StartSession()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Eventually(t, func() bool {
		return sf.Events.Count(session.EventTypeSessionStarted) == 1
	}, time.Second, 10*time.Millisecond)

	resp, err := sf.Do(http.MethodGet, "/api/v1/cart/count", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)
	count, err := DecodeData[storefront.CartCountResponse](resp)
	require.NoError(t, err)
	assert.Equal(t, 0, count.Count)
	assert.Empty(t, resp.ErrorCode())

	resp, err = sf.Do(http.MethodGet, "/api/v1/cart", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "ERR_SESSION_INVALID", resp.ErrorCode())
	var ignored map[string]any
	assert.Error(t, resp.Decode(&ignored))
}

func TestWaitForCondition(t *testing.T) {
	calls := 0
	ok := WaitForCondition(func() bool {
		calls++
		return calls >= 3
	}, time.Second, time.Millisecond)
	assert.True(t, ok)

	assert.False(t, WaitForCondition(func() bool { return false }, 5*time.Millisecond, time.Millisecond))
}
