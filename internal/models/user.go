package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"           json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255"                     json:"email,omitempty"`
	PasswordHash string    `gorm:"not null"                     json:"-"`
	Role         string    `gorm:"size:16;not null"             json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"                json:"id"`
	Token     string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID    string `gorm:"size:36;index;not null"    json:"user_id"`
	JTI       string `gorm:"size:36;uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"                  json:"expires_at"`
	Revoked   bool   `gorm:"not null;default:false"    json:"revoked"`
}
