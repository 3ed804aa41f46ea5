package repository

import (
	"sort"
	"sync"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/models"

	"github.com/google/uuid"
)

// MemoryLeadStore is an in-memory LeadRepository. It backs tests and the
// dashboard's degraded mode; it is injected explicitly rather than living as
// a package-level singleton so runs stay isolated.
type MemoryLeadStore struct {
	mu           sync.Mutex
	leads        []models.Lead
	appointments []models.Appointment
	sales        []models.Sale
	invoices     []models.Invoice
	contracts    []models.Contract
	now          func() time.Time
}

func NewMemoryLeadStore() *MemoryLeadStore {
	return &MemoryLeadStore{now: time.Now}
}

// Seed replaces the store's collections wholesale.
func (s *MemoryLeadStore) Seed(leads []models.Lead, appointments []models.Appointment, sales []models.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]models.Lead(nil), leads...)
	s.appointments = append([]models.Appointment(nil), appointments...)
	s.sales = append([]models.Sale(nil), sales...)
}

func (s *MemoryLeadStore) SeedBilling(invoices []models.Invoice, contracts []models.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append([]models.Invoice(nil), invoices...)
	s.contracts = append([]models.Contract(nil), contracts...)
}

func (s *MemoryLeadStore) ListLeads() ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Lead(nil), s.leads...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryLeadStore) CreateLead(input crm.NewLeadInput) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := models.Lead{
		ID:        uuid.New().String(),
		Email:     input.Email,
		EventDate: input.EventDate,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if row.Email == "" {
		row.Email = crm.EmailPlaceholder
	}
	if input.Name != "" {
		name := input.Name
		row.Name = &name
	}
	if input.Phone != "" {
		phone := input.Phone
		row.Phone = &phone
	}
	if input.Message != "" {
		message := input.Message
		row.Message = &message
	}
	if input.Source != "" {
		source := input.Source
		row.Source = &source
	}

	s.leads = append(s.leads, row)
	return row, nil
}

func (s *MemoryLeadStore) UpdateLead(id string, payload crm.LeadUpdatePayload) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		ApplyPayload(&s.leads[i], payload)
		s.leads[i].UpdatedAt = s.now()
		return s.leads[i], nil
	}
	return models.Lead{}, &crm.NotFoundError{ID: id}
}

func (s *MemoryLeadStore) ListAppointments() ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment(nil), s.appointments...), nil
}

func (s *MemoryLeadStore) ListSales() ([]models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Sale(nil), s.sales...), nil
}

func (s *MemoryLeadStore) ListInvoices() ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Invoice(nil), s.invoices...), nil
}

func (s *MemoryLeadStore) ListContracts() ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contract(nil), s.contracts...), nil
}

// NewDemoStore builds the labeled placeholder dataset shown when live data
// is unreachable: three leads across the pipeline, their bookings, and one
// guide sale.
func NewDemoStore() *MemoryLeadStore {
	now := time.Now()
	hour := time.Hour

	store := NewMemoryLeadStore()

	alice := "Alice Park"
	alicePhone := "555-201"
	aliceMsg := "Interested in a bridal trial.\n\nService: trial\nStage: uncontacted"
	bri := "Brianna Chen"
	briPhone := "555-202"
	briMsg := "Wedding party of five.\n\nService: wedding\nParty size: 5\nStage: booked"
	cami := "Cami Diaz"
	camiPhone := "555-203"
	camiMsg := "Studio glam session.\n\nService: studio\nStage: completed"

	aliceDate := now
	briDate := now.AddDate(0, 0, 3)
	camiDate := now.AddDate(0, 0, -10)

	leads := []models.Lead{
		{ID: "demo-l1", Name: &alice, Email: "alice@example.com", Phone: &alicePhone, EventDate: &aliceDate, Message: &aliceMsg, CreatedAt: now, UpdatedAt: now},
		{ID: "demo-l2", Name: &bri, Email: "bri@example.com", Phone: &briPhone, EventDate: &briDate, Message: &briMsg, CreatedAt: now.Add(-hour), UpdatedAt: now},
		{ID: "demo-l3", Name: &cami, Email: "cami@example.com", Phone: &camiPhone, EventDate: &camiDate, Message: &camiMsg, CreatedAt: now.Add(-2 * hour), UpdatedAt: now},
	}

	l1, l2, l3 := "demo-l1", "demo-l2", "demo-l3"
	trialEnd := now.Add(hour)
	weddingEnd := briDate.Add(4 * hour)
	studioEnd := camiDate.Add(2 * hour)
	p120, p380, p180 := 120.0, 380.0, 180.0

	appointments := []models.Appointment{
		{ID: "demo-e1", Title: "Bridal Trial — Alice", Start: &aliceDate, End: &trialEnd, LeadID: &l1, Service: "trial", Price: &p120, Status: "booked"},
		{ID: "demo-e2", Title: "Wedding — Brianna", Start: &briDate, End: &weddingEnd, LeadID: &l2, Service: "wedding", Price: &p380, Status: "booked"},
		{ID: "demo-e3", Title: "Studio — Cami", Start: &camiDate, End: &studioEnd, LeadID: &l3, Service: "studio", Price: &p180, Status: "completed"},
	}

	sales := []models.Sale{
		{ID: "demo-s1", Amount: 59, Type: "guide", CreatedAt: now},
	}

	store.Seed(leads, appointments, sales)
	return store
}
