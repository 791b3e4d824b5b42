package transport

import (
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CustomerInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Phone     string `json:"phone"     validate:"required,max=32"`
	Username  string `json:"username"  validate:"omitempty,max=100"`
}

type AddressInput struct {
	Street     string `json:"street"     validate:"required,max=255"`
	City       string `json:"city"       validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"omitempty,max=20"`
}

type OrderItemInput struct {
	ProductID string   `json:"productId" validate:"required,max=64"`
	Name      string   `json:"name"      validate:"required,max=255"`
	Price     *float64 `json:"price"     validate:"required,gte=0"`
	Quantity  int      `json:"quantity"  validate:"gte=1"`
	Image     string   `json:"image"     validate:"omitempty,max=512"`
}

type PricingInput struct {
	Subtotal *float64 `json:"subtotal" validate:"required,gte=0"`
	Shipping *float64 `json:"shipping" validate:"required,gte=0"`
	Tax      *float64 `json:"tax"      validate:"required,gte=0"`
	Total    *float64 `json:"total"    validate:"required,gte=0"`
}

type CreateOrderRequest struct {
	Customer       *CustomerInput   `json:"customer"       validate:"required"`
	Address        *AddressInput    `json:"address"        validate:"required"`
	Items          []OrderItemInput `json:"items"          validate:"required,min=1,dive"`
	Pricing        *PricingInput    `json:"pricing"        validate:"required"`
	PaymentMethod  string           `json:"paymentMethod"  validate:"omitempty,oneof=cod online card"`
	PaymentStatus  string           `json:"paymentStatus"  validate:"omitempty,oneof=pending paid failed refunded"`
	OrderStatus    string           `json:"orderStatus"    validate:"omitempty,oneof=confirmed processing shipped delivered cancelled"`
	TrackingNumber string           `json:"trackingNumber" validate:"omitempty,max=32"`
	Notes          string           `json:"notes"          validate:"max=500"`
}

type ListOrdersQuery struct {
	Page           int
	Limit          int
	Status         string
	Email          string
	TrackingNumber string
	Search         string
}

type OrderPage struct {
	Orders []models.Order `json:"orders"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
	Total  int64          `json:"total"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

type CreateReviewRequest struct {
	OrderID   string `json:"orderId"   validate:"required"`
	ProductID string `json:"productId" validate:"required,max=64"`
	Rating    int    `json:"rating"    validate:"gte=1,lte=5"`
	Comment   string `json:"comment"   validate:"max=1000"`
}

type ReviewPage struct {
	Reviews []models.Review `json:"reviews"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Total   int64           `json:"total"`
}

type ReviewSummaryRequest struct {
	ProductIDs []string `json:"productIds"`
}

type CreateProductRequest struct {
	Name            string   `json:"name"            validate:"required,max=255"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"           validate:"gte=0"`
	DiscountedPrice *float64 `json:"discountedPrice" validate:"omitempty,gte=0"`
	Images          []string `json:"images"          validate:"omitempty,dive,max=512"`
	CategoryID      string   `json:"categoryId"`
	Brand           string   `json:"brand"           validate:"max=100"`
	Stock           int      `json:"stock"           validate:"gte=0"`
	Featured        bool     `json:"featured"`
}

type PatchProductRequest struct {
	Name            *string   `json:"name"            validate:"omitempty,min=1,max=255"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"           validate:"omitempty,gte=0"`
	DiscountedPrice *float64  `json:"discountedPrice" validate:"omitempty,gte=0"`
	Images          *[]string `json:"images"`
	CategoryID      *string   `json:"categoryId"`
	Brand           *string   `json:"brand"           validate:"omitempty,max=100"`
	Stock           *int      `json:"stock"           validate:"omitempty,gte=0"`
	Featured        *bool     `json:"featured"`
}

type ProductPage struct {
	Items []models.Product `json:"products"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Total int64            `json:"total"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type CouponRequest struct {
	Code           string     `json:"code"           validate:"required,max=50"`
	DiscountType   string     `json:"discountType"   validate:"required,oneof=percent fixed"`
	Value          float64    `json:"value"          validate:"gt=0"`
	MinOrderAmount float64    `json:"minOrderAmount" validate:"gte=0"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	Active         *bool      `json:"active"`
}

type PatchCouponRequest struct {
	DiscountType   *string    `json:"discountType"   validate:"omitempty,oneof=percent fixed"`
	Value          *float64   `json:"value"          validate:"omitempty,gt=0"`
	MinOrderAmount *float64   `json:"minOrderAmount" validate:"omitempty,gte=0"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	Active         *bool      `json:"active"`
}

type ValidateCouponRequest struct {
	Code     string  `json:"code"     validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type CouponDiscount struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

type UpdateSettingsRequest struct {
	StoreName             string          `json:"storeName"             validate:"max=100"`
	Currency              string          `json:"currency"              validate:"required,len=3"`
	ShippingCost          float64         `json:"shippingCost"          validate:"gte=0"`
	FreeShippingThreshold float64         `json:"freeShippingThreshold" validate:"gte=0"`
	TaxRate               float64         `json:"taxRate"               validate:"gte=0,lte=1"`
	Features              map[string]bool `json:"features"`
}

type QuoteItem struct {
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type QuoteRequest struct {
	Items      []QuoteItem `json:"items"      validate:"required,min=1,dive"`
	CouponCode string      `json:"couponCode"`
}

type Quote struct {
	ItemsTotal float64 `json:"itemsTotal"`
	Discount   float64 `json:"discount"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

type Stats struct {
	TotalOrders   int64                        `json:"totalOrders"`
	OrdersByState map[models.OrderStatus]int64 `json:"ordersByStatus"`
	Revenue       float64                      `json:"revenue"`
	TotalProducts int64                        `json:"totalProducts"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
