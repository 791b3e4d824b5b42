package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"primaryKey;size:24"                            json:"id"`
	OrderID   string    `gorm:"size:24;not null;uniqueIndex:idx_review_triple" json:"orderId"`
	ProductID string    `gorm:"size:64;not null;uniqueIndex:idx_review_triple;index" json:"productId"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_review_triple" json:"userId"`
	Username  string    `gorm:"size:100"                                      json:"username,omitempty"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"         json:"rating"`
	Comment   string    `gorm:"size:1000"                                     json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

type ReviewSummary struct {
	ReviewCount   int64   `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}
