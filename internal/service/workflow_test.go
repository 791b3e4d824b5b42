package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestNewTrackingNumber(t *testing.T) {
	at := time.UnixMilli(1_700_000_123_456)
	for i := 0; i < 200; i++ {
		n := NewTrackingNumber(at)
		require.Regexp(t, trackingRe, n)
		assert.Equal(t, "TCF123456", n[:9])
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
		models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
		models.OrderStatusShipped:    {models.OrderStatusDelivered},
	}

	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.Empty(t, NextStatuses(models.OrderStatusDelivered))
	assert.Empty(t, NextStatuses(models.OrderStatusCancelled))
}

func TestCheckPricing(t *testing.T) {
	ok := models.Pricing{Subtotal: 100, Shipping: 10, Tax: 7, Total: 117}
	require.NoError(t, CheckPricing(ok))

	floaty := models.Pricing{Subtotal: 0.1, Shipping: 0.2, Tax: 0, Total: 0.3}
	require.NoError(t, CheckPricing(floaty))

	bad := models.Pricing{Subtotal: 100, Shipping: 10, Tax: 7, Total: 200}
	err := CheckPricing(bad)
	require.ErrorIs(t, err, ErrPricingMismatch)
	assert.Contains(t, err.Error(), "expected 117.00, got 200.00")
}
