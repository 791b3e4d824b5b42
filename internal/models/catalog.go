package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey;size:24"          json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:1000"                   json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

type Product struct {
	ID              string    `gorm:"primaryKey;size:24"            json:"id"`
	Name            string    `gorm:"size:255;not null"             json:"name"`
	Description     string    `gorm:"type:text"                     json:"description"`
	Price           float64   `gorm:"not null"                      json:"price"`
	DiscountedPrice *float64  `json:"discountedPrice,omitempty"`
	Images          []string  `gorm:"serializer:json;type:text"     json:"images"`
	CategoryID      *string   `gorm:"size:24;index"                 json:"categoryId,omitempty"`
	Brand           string    `gorm:"size:100"                      json:"brand,omitempty"`
	Stock           int       `gorm:"not null;check:stock >= 0"     json:"stock"`
	Rating          float64   `gorm:"not null;default:0"            json:"rating"`
	NumReviews      int       `gorm:"not null;default:0"            json:"numReviews"`
	Featured        bool      `gorm:"not null;default:false;index"  json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
