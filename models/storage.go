package models

import "time"

// CartRecord is one durable cart snapshot, keyed by the persistence slot
// key. Payload is the raw serialized cart as last written; it is fed back
// through the cart sanitizer on load and never trusted as-is.
type CartRecord struct {
	Key       string `gorm:"primaryKey;size:128"`
	Payload   string
	UpdatedAt time.Time
}
