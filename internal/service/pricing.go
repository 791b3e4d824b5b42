package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

var pricingTolerance = decimal.RequireFromString("0.01")

// CheckPricing enforces |subtotal + shipping + tax - total| <= 0.01.
func CheckPricing(p models.Pricing) error {
	sum := decimal.NewFromFloat(p.Subtotal).
		Add(decimal.NewFromFloat(p.Shipping)).
		Add(decimal.NewFromFloat(p.Tax))
	total := decimal.NewFromFloat(p.Total)

	if sum.Sub(total).Abs().GreaterThan(pricingTolerance) {
		return fmt.Errorf("%w: expected %s, got %s", ErrPricingMismatch, sum.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
