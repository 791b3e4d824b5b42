package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type SettingsService struct {
	Repo    *repo.GormRepo
	Coupons *CouponService
}

func (s *SettingsService) GetSettings(ctx context.Context) (*models.Setting, error) {
	return s.Repo.GetSetting(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req transport.UpdateSettingsRequest) (*models.Setting, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	cur, err := s.Repo.GetSetting(ctx)
	if err != nil {
		return nil, err
	}

	cur.Currency = strings.ToUpper(req.Currency)
	cur.ShippingCost = req.ShippingCost
	cur.FreeShippingThreshold = req.FreeShippingThreshold
	cur.TaxRate = req.TaxRate
	if req.StoreName != "" {
		cur.StoreName = strings.TrimSpace(req.StoreName)
	}
	if req.Features != nil {
		cur.Features = req.Features
	}

	if err := s.Repo.SaveSetting(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Quote prices a cart with the current settings. Shipping is waived once the
// discounted subtotal reaches the free shipping threshold; tax applies to the
// discounted subtotal. Every figure is rounded to cents and the total is the
// exact sum of subtotal, shipping and tax.
func (s *SettingsService) Quote(ctx context.Context, req transport.QuoteRequest) (*transport.Quote, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	settings, err := s.Repo.GetSetting(ctx)
	if err != nil {
		return nil, err
	}

	itemsTotal := decimal.Zero
	for _, it := range req.Items {
		itemsTotal = itemsTotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	itemsTotal = itemsTotal.Round(2)

	discount := decimal.Zero
	if strings.TrimSpace(req.CouponCode) != "" && s.Coupons != nil {
		if discount, _, err = s.Coupons.discount(ctx, req.CouponCode, itemsTotal); err != nil {
			return nil, err
		}
	}

	subtotal := itemsTotal.Sub(discount)
	shipping := decimal.NewFromFloat(settings.ShippingCost).Round(2)
	if settings.FreeShippingThreshold > 0 && subtotal.GreaterThanOrEqual(decimal.NewFromFloat(settings.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(decimal.NewFromFloat(settings.TaxRate)).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return &transport.Quote{
		ItemsTotal: money(itemsTotal),
		Discount:   money(discount),
		Subtotal:   money(subtotal),
		Shipping:   money(shipping),
		Tax:        money(tax),
		Total:      money(total),
		Currency:   settings.Currency,
	}, nil
}
