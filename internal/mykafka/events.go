package mykafka

import "github.com/Skotchmaster/storefront/internal/models"

const (
	TopicOrders   = "order_events"
	TopicProducts = "product_events"
	TopicReviews  = "review_events"
)

const (
	OrderCreated        = "order_created"
	OrderStatusChanged  = "order_status_changed"
	OrderPaymentChanged = "order_payment_changed"

	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"

	ReviewCreated = "review_created"
)

type OrderEvent struct {
	Type           string               `json:"type"`
	OrderID        string               `json:"orderID"`
	TrackingNumber string               `json:"trackingNumber"`
	Email          string               `json:"email"`
	OrderStatus    models.OrderStatus   `json:"orderStatus"`
	PreviousStatus models.OrderStatus   `json:"previousStatus,omitempty"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	Total          float64              `json:"total"`
}

func NewOrderEvent(typ string, o *models.Order) OrderEvent {
	return OrderEvent{
		Type:           typ,
		OrderID:        o.ID,
		TrackingNumber: o.TrackingNumber,
		Email:          o.Customer.Email,
		OrderStatus:    o.OrderStatus,
		PaymentStatus:  o.PaymentStatus,
		Total:          o.Pricing.Total,
	}
}

// ProductEvent carries the full product on create and update so consumers
// can index it without reading the database.
type ProductEvent struct {
	Type      string          `json:"type"`
	ProductID string          `json:"productID"`
	Product   *models.Product `json:"product,omitempty"`
}

type ReviewEvent struct {
	Type      string `json:"type"`
	ReviewID  string `json:"reviewID"`
	ProductID string `json:"productID"`
	OrderID   string `json:"orderID"`
	Rating    int    `json:"rating"`
}
