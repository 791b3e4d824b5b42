package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCard   PaymentMethod = "card"
)

type Customer struct {
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:32;not null"  json:"phone"`
	Username  string `gorm:"size:100"          json:"username,omitempty"`
}

type Address struct {
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20"  json:"postalCode,omitempty"`
}

type Pricing struct {
	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Shipping float64 `gorm:"not null" json:"shipping"`
	Tax      float64 `gorm:"not null" json:"tax"`
	Total    float64 `gorm:"not null" json:"total"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"              json:"-"`
	OrderID   string  `gorm:"size:24;index;not null"  json:"-"`
	ProductID string  `gorm:"size:64;not null"        json:"productId"`
	Name      string  `gorm:"size:255;not null"       json:"name"`
	Price     float64 `gorm:"not null"                json:"price"`
	Quantity  int     `gorm:"not null"                json:"quantity"`
	Image     string  `gorm:"size:512"                json:"image,omitempty"`
	// Reserved marks items whose quantity was taken from product stock.
	Reserved bool `gorm:"not null;default:false" json:"-"`
}

type Order struct {
	ID             string        `gorm:"primaryKey;size:24"                                   json:"id"`
	Customer       Customer      `gorm:"embedded;embeddedPrefix:customer_"                    json:"customer"`
	Address        Address       `gorm:"embedded;embeddedPrefix:address_"                     json:"address"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"       json:"items"`
	Pricing        Pricing       `gorm:"embedded;embeddedPrefix:pricing_"                     json:"pricing"`
	PaymentMethod  PaymentMethod `gorm:"size:16;not null"                                     json:"paymentMethod"`
	PaymentStatus  PaymentStatus `gorm:"size:16;not null;index"                               json:"paymentStatus"`
	OrderStatus    OrderStatus   `gorm:"size:16;not null;index"                               json:"orderStatus"`
	TrackingNumber string        `gorm:"size:32;not null;uniqueIndex"                         json:"trackingNumber"`
	OrderDate      time.Time     `gorm:"not null;index"                                       json:"orderDate"`
	DeliveryDate   *time.Time    `json:"deliveryDate,omitempty"`
	Notes          string        `gorm:"size:500"                                             json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = NewID()
	}
	return nil
}
