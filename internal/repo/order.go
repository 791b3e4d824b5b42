package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
)

// OrderFilter narrows ListOrders. Empty fields do not filter.
type OrderFilter struct {
	Status         models.OrderStatus
	Email          string
	TrackingNumber string
	Username       string
	IDSuffix       string
	ID             string
}

// CreateOrder reserves stock for items that reference catalog products and
// inserts the order in one transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Order{}).Where("tracking_number = ?", order.TrackingNumber).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrTrackingTaken
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.Reserved = false

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				item.Reserved = true
				continue
			}

			var count int64
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrInsufficientStock
			}
		}

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTrackingTaken
			}
			return err
		}
		return nil
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByTracking(ctx context.Context, trackingNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("tracking_number = ?", trackingNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})

	if f.Status != "" {
		q = q.Where("order_status = ?", f.Status)
	}
	if f.Email != "" {
		q = q.Where("LOWER(customer_email) = ?", strings.ToLower(f.Email))
	}
	if f.TrackingNumber != "" {
		q = q.Where("tracking_number = ?", f.TrackingNumber)
	}
	if f.Username != "" {
		q = q.Where("customer_username = ?", f.Username)
	}
	switch {
	case f.ID != "":
		q = q.Where("id = ?", strings.ToLower(f.ID))
	case f.IDSuffix != "":
		q = q.Where(`LOWER(id) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(f.IDSuffix)))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.Order, 0, limit)
	if err := q.Preload("Items").Order("order_date DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// TransitionOrderStatus moves an order to the next status only while it
// still holds the expected one. Cancelling restores reserved stock.
func (r *GormRepo) TransitionOrderStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"order_status": to}
		if to == models.OrderStatusDelivered {
			updates["delivery_date"] = at
		}

		res := tx.Model(&models.Order{}).Where("id = ? AND order_status = ?", id, from).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusChanged
		}

		if to != models.OrderStatusCancelled {
			return nil
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ? AND reserved = ?", id, true).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.OrderItem{}).Where("order_id = ?", id).Update("reserved", false).Error
	})
}

func (r *GormRepo) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
