package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CouponService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *CouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.Repo.ListCoupons(ctx)
}

func (s *CouponService) CreateCoupon(ctx context.Context, req transport.CouponRequest) (*models.Coupon, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	dt := models.DiscountType(req.DiscountType)
	if dt == models.DiscountPercent && req.Value > 100 {
		return nil, fmt.Errorf("%w: value must be at most 100 for percent coupons", ErrValidation)
	}

	code := normalizeCode(req.Code)
	if _, err := s.Repo.GetCouponByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: coupon %s already exists", ErrConflict, code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	c := &models.Coupon{
		Code:           code,
		DiscountType:   dt,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		ExpiresAt:      req.ExpiresAt,
		Active:         active,
	}
	if err := s.Repo.CreateCoupon(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: coupon %s already exists", ErrConflict, code)
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) PatchCoupon(ctx context.Context, id string, req transport.PatchCouponRequest) (*models.Coupon, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return nil, fmt.Errorf("%w: invalid coupon id", ErrValidation)
	}
	c, err := s.Repo.GetCoupon(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: coupon %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.DiscountType != nil {
		c.DiscountType = models.DiscountType(*req.DiscountType)
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	if req.MinOrderAmount != nil {
		c.MinOrderAmount = *req.MinOrderAmount
	}
	if req.ExpiresAt != nil {
		c.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if c.DiscountType == models.DiscountPercent && c.Value > 100 {
		return nil, fmt.Errorf("%w: value must be at most 100 for percent coupons", ErrValidation)
	}

	if err := s.Repo.SaveCoupon(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id string) error {
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return fmt.Errorf("%w: invalid coupon id", ErrValidation)
	}
	if err := s.Repo.DeleteCoupon(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: coupon %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// ValidateCoupon resolves a code against a subtotal and reports the discount
// it grants.
func (s *CouponService) ValidateCoupon(ctx context.Context, req transport.ValidateCouponRequest) (*transport.CouponDiscount, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	discount, c, err := s.discount(ctx, req.Code, decimal.NewFromFloat(req.Subtotal))
	if err != nil {
		return nil, err
	}
	return &transport.CouponDiscount{Code: c.Code, Discount: money(discount)}, nil
}

func (s *CouponService) discount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *models.Coupon, error) {
	code = normalizeCode(code)
	c, err := s.Repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil, fmt.Errorf("%w: coupon %s does not exist", ErrValidation, code)
		}
		return decimal.Zero, nil, err
	}
	d, err := couponDiscount(c, subtotal, s.now())
	return d, c, err
}

func couponDiscount(c *models.Coupon, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	switch {
	case !c.Active:
		return decimal.Zero, fmt.Errorf("%w: coupon %s is not active", ErrValidation, c.Code)
	case c.ExpiresAt != nil && !now.Before(*c.ExpiresAt):
		return decimal.Zero, fmt.Errorf("%w: coupon %s has expired", ErrValidation, c.Code)
	case subtotal.LessThan(decimal.NewFromFloat(c.MinOrderAmount)):
		return decimal.Zero, fmt.Errorf("%w: coupon %s requires a subtotal of at least %.2f", ErrValidation, c.Code, c.MinOrderAmount)
	}

	var d decimal.Decimal
	switch c.DiscountType {
	case models.DiscountPercent:
		d = subtotal.Mul(decimal.NewFromFloat(c.Value)).Div(decimal.NewFromInt(100))
	default:
		d = decimal.NewFromFloat(c.Value)
	}
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	return d.Round(2), nil
}
