package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
)

type ReviewStat struct {
	ProductID     string
	ReviewCount   int64
	AverageRating float64
}

func (r *GormRepo) ReviewExists(ctx context.Context, orderID, productID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("order_id = ? AND product_id = ? AND user_id = ?", orderID, productID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateReview inserts the review and refreshes the product's rating and
// review count in the same transaction.
func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var stat ReviewStat
		if err := tx.Model(&models.Review{}).
			Select("COUNT(*) AS review_count, COALESCE(AVG(rating), 0) AS average_rating").
			Where("product_id = ?", review.ProductID).
			Scan(&stat).Error; err != nil {
			return err
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]any{
				"rating":      stat.AverageRating,
				"num_reviews": stat.ReviewCount,
			}).Error
	})
}

func (r *GormRepo) ListReviews(ctx context.Context, productID string, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Review, 0, limit)
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ReviewStats(ctx context.Context, productIDs []string) ([]ReviewStat, error) {
	stats := make([]ReviewStat, 0, len(productIDs))
	if len(productIDs) == 0 {
		return stats, nil
	}
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("product_id, COUNT(*) AS review_count, AVG(rating) AS average_rating").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&stats).Error
	return stats, err
}
