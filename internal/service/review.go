package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type ReviewService struct {
	Repo      *repo.GormRepo
	Publisher EventPublisher
}

// Reviewer identifies the signed-in user submitting a review.
type Reviewer struct {
	UserID   string
	Username string
}

// CreateReview accepts a review only for a delivered order and only once per
// (order, product, user).
func (s *ReviewService) CreateReview(ctx context.Context, who Reviewer, req transport.CreateReviewRequest) (*models.Review, error) {
	if who.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if err := Validate(req); err != nil {
		return nil, err
	}

	orderID := models.NormalizeID(req.OrderID)
	productID := productKey(req.ProductID)
	if !models.IsID(orderID) {
		return nil, ErrOrderNotDelivered
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotDelivered
	}
	if err != nil {
		return nil, err
	}
	if order.OrderStatus != models.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	exists, err := s.Repo.ReviewExists(ctx, orderID, productID, who.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		OrderID:   orderID,
		ProductID: productID,
		UserID:    who.UserID,
		Username:  who.Username,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.TopicReviews, productID, mykafka.ReviewEvent{
		Type:      mykafka.ReviewCreated,
		ReviewID:  review.ID,
		ProductID: productID,
		OrderID:   orderID,
		Rating:    review.Rating,
	})
	return review, nil
}

func (s *ReviewService) HasReviewed(ctx context.Context, userID, orderID, productID string) (bool, error) {
	orderID = models.NormalizeID(orderID)
	productID = productKey(productID)
	if orderID == "" || productID == "" {
		return false, fmt.Errorf("%w: orderId and productId are required", ErrValidation)
	}
	return s.Repo.ReviewExists(ctx, orderID, productID, userID)
}

func (s *ReviewService) ListReviews(ctx context.Context, productID string, page, limit int) (*transport.ReviewPage, error) {
	productID = productKey(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: productId is required", ErrValidation)
	}
	page, offset, limit := util.Calculate(page, limit)

	total, items, err := s.Repo.ListReviews(ctx, productID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.ReviewPage{
		Reviews: items,
		Page:    page,
		Pages:   util.Pages(total, limit),
		Total:   total,
	}, nil
}

// Summary reports review count and mean rating per requested product id.
// Ids that are not document ids are left out of the query and reported as
// zero, as are ids without reviews. Results are keyed by the ids as given.
func (s *ReviewService) Summary(ctx context.Context, productIDs []string) (map[string]models.ReviewSummary, error) {
	out := make(map[string]models.ReviewSummary, len(productIDs))
	asked := make(map[string][]string, len(productIDs))
	valid := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		out[id] = models.ReviewSummary{}
		key := models.NormalizeID(id)
		if !models.IsID(key) {
			continue
		}
		if _, seen := asked[key]; !seen {
			valid = append(valid, key)
		}
		asked[key] = append(asked[key], id)
	}

	stats, err := s.Repo.ReviewStats(ctx, valid)
	if err != nil {
		return nil, err
	}
	for _, st := range stats {
		sum := models.ReviewSummary{
			ReviewCount:   st.ReviewCount,
			AverageRating: decimal.NewFromFloat(st.AverageRating).Round(1).InexactFloat64(),
		}
		for _, id := range asked[st.ProductID] {
			out[id] = sum
		}
	}
	return out, nil
}

// productKey lower-cases catalog document ids so every case variant names
// the same product. Other ids are only trimmed.
func productKey(id string) string {
	id = strings.TrimSpace(id)
	if norm := models.NormalizeID(id); models.IsID(norm) {
		return norm
	}
	return id
}
