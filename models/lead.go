package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead is the flat persisted row behind the CRM. Intake details that have no
// column of their own are serialized into Message by the crm codec.
type Lead struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	Name      *string    `json:"name"`
	Email     string     `gorm:"not null" json:"email"` // placeholder sentinel when not supplied
	Phone     *string    `json:"phone"`
	EventDate *time.Time `json:"eventDate"`
	Message   *string    `gorm:"type:text" json:"message"`
	Source    *string    `json:"source"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}
