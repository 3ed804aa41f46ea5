package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale records a one-off digital purchase (beauty guides and the like).
type Sale struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"` // "guide" or other
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
