package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/starsoft-labs/nft-market-api/models"
)

// Slot is one durable key-value cell. Both operations fail soft: a broken
// slot degrades the cart to in-memory only, it never breaks the caller.
type Slot interface {
	// Read returns the stored payload, or ok=false when the slot is empty
	// or unreadable.
	Read() (payload string, ok bool)
	// Write replaces the stored payload.
	Write(payload string) error
}

// GormSlot keeps payloads in the cart_records table, one row per key.
type GormSlot struct {
	db  *gorm.DB
	key string
}

func NewGormSlot(db *gorm.DB, key string) *GormSlot {
	return &GormSlot{db: db, key: key}
}

func (s *GormSlot) Read() (string, bool) {
	var record models.CartRecord
	if err := s.db.First(&record, "key = ?", s.key).Error; err != nil {
		return "", false
	}
	return record.Payload, true
}

func (s *GormSlot) Write(payload string) error {
	record := models.CartRecord{Key: s.key, Payload: payload, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}
