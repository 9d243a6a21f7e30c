package models

import "time"

// GuestUser is a short-lived anonymous identity. Each guest owns exactly one
// cart, addressed by a slot key derived from this ID.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
