package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice and Contract are alert inputs only; the dashboard never creates or
// mutates them.
type Invoice struct {
	ID     string     `gorm:"type:uuid;primary_key" json:"id"`
	LeadID string     `gorm:"type:uuid;index;not null" json:"leadId"`
	Kind   string     `gorm:"type:varchar(20)" json:"kind"` // deposit, balance
	DueAt  *time.Time `json:"dueAt"`
	Total  float64    `gorm:"type:decimal(10,2)" json:"total"`
	Status string     `gorm:"type:varchar(20)" json:"status"` // draft, sent, paid, overdue, void
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

type Contract struct {
	ID       string `gorm:"type:uuid;primary_key" json:"id"`
	LeadID   string `gorm:"type:uuid;index;not null" json:"leadId"`
	Template string `json:"template"` // e.g. "wedding_standard"
	Title    string `json:"title"`
	Service  string `json:"service"`
	Status   string `gorm:"type:varchar(20)" json:"status"` // draft, sent, signed, void
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
