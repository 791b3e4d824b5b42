package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var items []models.Coupon
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCoupon(ctx context.Context, c *models.Coupon) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCoupon(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Coupon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetSetting returns the stored settings, or the defaults when none were saved.
func (r *GormRepo) GetSetting(ctx context.Context) (*models.Setting, error) {
	var s models.Setting
	err := r.DB.WithContext(ctx).Where("id = ?", models.SettingsID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSetting()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) SaveSetting(ctx context.Context, s *models.Setting) error {
	s.ID = models.SettingsID
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

type StatusCount struct {
	OrderStatus models.OrderStatus
	Count       int64
	Revenue     float64
}

func (r *GormRepo) OrderStatusCounts(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("order_status, COUNT(*) AS count, COALESCE(SUM(pricing_total), 0) AS revenue").
		Group("order_status").
		Scan(&rows).Error
	return rows, err
}

type CustomerRow struct {
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	OrderCount int64   `json:"orderCount"`
	TotalSpent float64 `json:"totalSpent"`
}

// ListCustomers aggregates customers from orders, keyed by lower-cased email.
func (r *GormRepo) ListCustomers(ctx context.Context, offset, limit int) (int64, []CustomerRow, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT LOWER(customer_email)) FROM orders").
		Scan(&total).Error; err != nil {
		return 0, nil, err
	}

	rows := make([]CustomerRow, 0, limit)
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select(`LOWER(customer_email) AS email,
			MAX(customer_first_name) AS first_name,
			MAX(customer_last_name) AS last_name,
			MAX(customer_phone) AS phone,
			COUNT(*) AS order_count,
			COALESCE(SUM(CASE WHEN order_status <> ? THEN pricing_total ELSE 0 END), 0) AS total_spent`, models.OrderStatusCancelled).
		Group("LOWER(customer_email)").
		Order("total_spent DESC").
		Order("email ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}
	return total, rows, nil
}
