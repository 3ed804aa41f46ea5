package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment rows arrive from the booking collaborator and are read-only
// inputs to the dashboard. End may be null; the calendar defaults it to
// start + 1 hour.
type Appointment struct {
	ID       string     `gorm:"type:uuid;primary_key" json:"id"`
	Title    string     `json:"title"`
	Start    *time.Time `gorm:"index" json:"start"`
	End      *time.Time `json:"end"`
	LeadID   *string    `gorm:"type:uuid;index" json:"leadId"`
	Service  string     `json:"service"`
	Price    *float64   `gorm:"type:decimal(10,2)" json:"price"`
	Status   string     `gorm:"type:varchar(20)" json:"status"` // tentative, booked, completed, canceled
	Location string     `json:"location"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
