package repository

import (
	"errors"
	"strings"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/models"

	"gorm.io/gorm"
)

// LeadRepository is the full persistence surface the back office needs: the
// lead read/write contract plus the read-only collaborator collections.
type LeadRepository interface {
	crm.LeadSource
	ListAppointments() ([]models.Appointment, error)
	ListSales() ([]models.Sale, error)
	ListInvoices() ([]models.Invoice, error)
	ListContracts() ([]models.Contract, error)
}

// GormLeadStore backs the repository with postgres through gorm.
type GormLeadStore struct {
	db *gorm.DB
}

func NewGormLeadStore(db *gorm.DB) *GormLeadStore {
	return &GormLeadStore{db: db}
}

// ListLeads returns rows newest-created-first.
func (s *GormLeadStore) ListLeads() ([]models.Lead, error) {
	var rows []models.Lead
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, &crm.TransientError{Op: "list leads", Err: err}
	}
	return rows, nil
}

func (s *GormLeadStore) CreateLead(input crm.NewLeadInput) (models.Lead, error) {
	row := models.Lead{
		Email:     strings.TrimSpace(input.Email),
		EventDate: input.EventDate,
	}
	if row.Email == "" {
		// schema requires an email; the sentinel marks "not supplied"
		row.Email = crm.EmailPlaceholder
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		row.Name = &name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		row.Phone = &phone
	}
	if message := strings.TrimSpace(input.Message); message != "" {
		row.Message = &message
	}
	if source := strings.TrimSpace(input.Source); source != "" {
		row.Source = &source
	}

	if err := s.db.Create(&row).Error; err != nil {
		return models.Lead{}, &crm.TransientError{Op: "create lead", Err: err}
	}
	return row, nil
}

// UpdateLead is a full replace of the persisted columns.
func (s *GormLeadStore) UpdateLead(id string, payload crm.LeadUpdatePayload) (models.Lead, error) {
	var row models.Lead
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Lead{}, &crm.NotFoundError{ID: id}
		}
		return models.Lead{}, &crm.TransientError{Op: "update lead", Err: err}
	}

	ApplyPayload(&row, payload)

	if err := s.db.Save(&row).Error; err != nil {
		return models.Lead{}, &crm.TransientError{Op: "update lead", Err: err}
	}
	return row, nil
}

func (s *GormLeadStore) ListAppointments() ([]models.Appointment, error) {
	var rows []models.Appointment
	if err := s.db.Order("start ASC").Find(&rows).Error; err != nil {
		return nil, &crm.TransientError{Op: "list appointments", Err: err}
	}
	return rows, nil
}

func (s *GormLeadStore) ListSales() ([]models.Sale, error) {
	var rows []models.Sale
	if err := s.db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, &crm.TransientError{Op: "list sales", Err: err}
	}
	return rows, nil
}

func (s *GormLeadStore) ListInvoices() ([]models.Invoice, error) {
	var rows []models.Invoice
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, &crm.TransientError{Op: "list invoices", Err: err}
	}
	return rows, nil
}

func (s *GormLeadStore) ListContracts() ([]models.Contract, error) {
	var rows []models.Contract
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, &crm.TransientError{Op: "list contracts", Err: err}
	}
	return rows, nil
}

// ApplyPayload maps the codec's flat projection onto a row. Empty strings
// become nulls; the email placeholder passes through untouched since the
// schema requires a value.
func ApplyPayload(row *models.Lead, payload crm.LeadUpdatePayload) {
	row.Name = optional(payload.Name)
	row.Phone = optional(payload.Phone)
	row.Message = optional(payload.Message)
	row.Source = optional(payload.Source)

	row.Email = payload.Email
	if row.Email == "" {
		row.Email = crm.EmailPlaceholder
	}

	row.EventDate = nil
	if payload.EventDate != "" {
		if t, err := time.Parse(time.RFC3339, payload.EventDate); err == nil {
			row.EventDate = &t
		}
	}
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
