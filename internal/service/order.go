package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const trackingAttempts = 3

type OrderService struct {
	Repo        *repo.GormRepo
	Publisher   EventPublisher
	Now         func() time.Time
	NewTracking func(time.Time) string
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) tracking(at time.Time) string {
	if s.NewTracking != nil {
		return s.NewTracking(at)
	}
	return NewTrackingNumber(at)
}

func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if err := Validate(req); err != nil {
		return nil, err
	}

	pricing := models.Pricing{
		Subtotal: *req.Pricing.Subtotal,
		Shipping: *req.Pricing.Shipping,
		Tax:      *req.Pricing.Tax,
		Total:    *req.Pricing.Total,
	}
	if err := CheckPricing(pricing); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		Customer: models.Customer{
			FirstName: strings.TrimSpace(req.Customer.FirstName),
			LastName:  strings.TrimSpace(req.Customer.LastName),
			Email:     strings.TrimSpace(req.Customer.Email),
			Phone:     strings.TrimSpace(req.Customer.Phone),
			Username:  strings.TrimSpace(req.Customer.Username),
		},
		Address: models.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
		},
		Pricing:        pricing,
		PaymentMethod:  models.PaymentMethodCOD,
		PaymentStatus:  models.PaymentStatusPending,
		OrderStatus:    models.OrderStatusConfirmed,
		TrackingNumber: strings.TrimSpace(req.TrackingNumber),
		OrderDate:      now,
		Notes:          req.Notes,
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = models.PaymentMethod(req.PaymentMethod)
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = models.PaymentStatus(req.PaymentStatus)
	}
	if req.OrderStatus != "" {
		order.OrderStatus = models.OrderStatus(req.OrderStatus)
	}
	if order.OrderStatus == models.OrderStatusDelivered {
		order.DeliveryDate = &now
	}

	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      it.Name,
			Price:     *it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	generated := order.TrackingNumber == ""
	var err error
	for attempt := 1; attempt <= trackingAttempts; attempt++ {
		if generated {
			order.TrackingNumber = s.tracking(now)
		}
		order.ID = ""
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = ""
		}

		err = s.Repo.CreateOrder(ctx, order)
		if !errors.Is(err, repo.ErrTrackingTaken) || !generated {
			break
		}
		l.Warn("tracking_number_collision", "tracking_number", order.TrackingNumber, "attempt", attempt)
	}

	switch {
	case err == nil:
	case errors.Is(err, repo.ErrInsufficientStock):
		return nil, fmt.Errorf("%w: %v", ErrOutOfStock, err)
	case errors.Is(err, repo.ErrTrackingTaken):
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.TopicOrders, order.ID, mykafka.NewOrderEvent(mykafka.OrderCreated, order))
	return order, nil
}

// orderFilter turns the query parameters into a repo filter. A search of
// exactly six characters matches the id suffix, twenty-four characters the
// whole id; other lengths do not narrow by id.
func orderFilter(q transport.ListOrdersQuery) (repo.OrderFilter, error) {
	f := repo.OrderFilter{
		Email:          strings.TrimSpace(q.Email),
		TrackingNumber: strings.TrimSpace(q.TrackingNumber),
	}
	if q.Status != "" {
		st := models.OrderStatus(q.Status)
		if !st.Valid() {
			return f, fmt.Errorf("%w: status must be one of [confirmed processing shipped delivered cancelled]", ErrValidation)
		}
		f.Status = st
	}

	search := strings.TrimSpace(q.Search)
	switch len(search) {
	case 6:
		f.IDSuffix = search
	case models.IDLength:
		f.ID = search
	}
	return f, nil
}

func (s *OrderService) ListOrders(ctx context.Context, q transport.ListOrdersQuery) (*transport.OrderPage, error) {
	f, err := orderFilter(q)
	if err != nil {
		return nil, err
	}
	return s.listOrders(ctx, f, q.Page, q.Limit)
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, username string, page, limit int) (*transport.OrderPage, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	return s.listOrders(ctx, repo.OrderFilter{Username: username}, page, limit)
}

func (s *OrderService) listOrders(ctx context.Context, f repo.OrderFilter, page, limit int) (*transport.OrderPage, error) {
	page, offset, limit := util.Calculate(page, limit)

	total, orders, err := s.Repo.ListOrders(ctx, f, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.OrderPage{
		Orders: orders,
		Page:   page,
		Pages:  util.Pages(total, limit),
		Total:  total,
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return order, err
}

func (s *OrderService) TrackOrder(ctx context.Context, trackingNumber string) (*models.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, fmt.Errorf("%w: trackingNumber is required", ErrValidation)
	}
	order, err := s.Repo.GetOrderByTracking(ctx, trackingNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tracking number %s", ErrNotFound, trackingNumber)
	}
	return order, err
}

// UpdateStatus applies one transition of the order state machine. Setting
// the current status again is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	next := models.OrderStatus(req.OrderStatus)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: orderStatus must be one of [confirmed processing shipped delivered cancelled]", ErrValidation)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := order.OrderStatus
	if prev == next {
		return order, nil
	}
	if !CanTransition(prev, next) {
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %s)", ErrInvalidTransition, prev, next, allowedList(prev))
	}

	if err := s.Repo.TransitionOrderStatus(ctx, order.ID, prev, next, s.now()); err != nil {
		if errors.Is(err, repo.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	order, err = s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	ev := mykafka.NewOrderEvent(mykafka.OrderStatusChanged, order)
	ev.PreviousStatus = prev
	publish(ctx, s.Publisher, mykafka.TopicOrders, order.ID, ev)
	return order, nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, req transport.UpdatePaymentStatusRequest) (*models.Order, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	status := models.PaymentStatus(req.PaymentStatus)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: paymentStatus must be one of [pending paid failed refunded]", ErrValidation)
	}

	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	if err := s.Repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Publisher, mykafka.TopicOrders, order.ID, mykafka.NewOrderEvent(mykafka.OrderPaymentChanged, order))
	return order, nil
}
