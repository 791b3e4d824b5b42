package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type Coupon struct {
	ID             string       `gorm:"primaryKey;size:24"           json:"id"`
	Code           string       `gorm:"size:50;not null;uniqueIndex" json:"code"`
	DiscountType   DiscountType `gorm:"size:16;not null"             json:"discountType"`
	Value          float64      `gorm:"not null"                     json:"value"`
	MinOrderAmount float64      `gorm:"not null;default:0"           json:"minOrderAmount"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
	Active         bool         `gorm:"not null"                     json:"active"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// SettingsID is the primary key of the single store settings row.
const SettingsID = 1

type Setting struct {
	ID                    uint            `gorm:"primaryKey"               json:"-"`
	StoreName             string          `gorm:"size:100"                 json:"storeName"`
	Currency              string          `gorm:"size:8;not null"          json:"currency"`
	ShippingCost          float64         `gorm:"not null"                 json:"shippingCost"`
	FreeShippingThreshold float64         `gorm:"not null"                 json:"freeShippingThreshold"`
	TaxRate               float64         `gorm:"not null"                 json:"taxRate"`
	Features              map[string]bool `gorm:"serializer:json;type:text" json:"features"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func DefaultSetting() Setting {
	return Setting{
		ID:                    SettingsID,
		StoreName:             "Storefront",
		Currency:              "USD",
		ShippingCost:          10,
		FreeShippingThreshold: 100,
		TaxRate:               0.07,
		Features: map[string]bool{
			"reviews": true,
			"coupons": true,
			"cod":     true,
		},
	}
}
