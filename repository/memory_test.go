package repository

import (
	"testing"
	"time"

	"glowbook-backend/crm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateLead(t *testing.T) {
	store := NewMemoryLeadStore()

	row, err := store.CreateLead(crm.NewLeadInput{Name: "Dana", Message: "Hi"})
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID)
	assert.Equal(t, crm.EmailPlaceholder, row.Email, "schema requires an email, sentinel fills the gap")
	require.NotNil(t, row.Name)
	assert.Equal(t, "Dana", *row.Name)

	rows, err := store.ListLeads()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMemoryStoreListLeadsNewestFirst(t *testing.T) {
	store := NewMemoryLeadStore()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	i := 0
	store.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	first, err := store.CreateLead(crm.NewLeadInput{Name: "First"})
	require.NoError(t, err)
	second, err := store.CreateLead(crm.NewLeadInput{Name: "Second"})
	require.NoError(t, err)

	rows, err := store.ListLeads()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestMemoryStoreUpdateLead(t *testing.T) {
	store := NewMemoryLeadStore()
	row, err := store.CreateLead(crm.NewLeadInput{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	updated, err := store.UpdateLead(row.ID, crm.LeadUpdatePayload{
		ID:      row.ID,
		Name:    "Dana R.",
		Email:   "",
		Message: "Hello.\n\nStage: booked",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Name)
	assert.Equal(t, "Dana R.", *updated.Name)
	assert.Equal(t, crm.EmailPlaceholder, updated.Email, "clearing the email restores the sentinel")

	lead := crm.DecodeLead(updated)
	assert.Equal(t, crm.StageBooked, lead.Stage)
	assert.Empty(t, lead.Email)
}

func TestMemoryStoreUpdateUnknownLead(t *testing.T) {
	store := NewMemoryLeadStore()
	_, err := store.UpdateLead("nope", crm.LeadUpdatePayload{ID: "nope"})
	assert.True(t, crm.IsNotFoundError(err))
}

func TestApplyPayloadEventDate(t *testing.T) {
	row, err := NewMemoryLeadStore().CreateLead(crm.NewLeadInput{Name: "Dana"})
	require.NoError(t, err)

	ApplyPayload(&row, crm.LeadUpdatePayload{ID: row.ID, EventDate: "2025-06-14T00:00:00Z"})
	require.NotNil(t, row.EventDate)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), row.EventDate.UTC())

	ApplyPayload(&row, crm.LeadUpdatePayload{ID: row.ID, EventDate: "not a date"})
	assert.Nil(t, row.EventDate, "unparseable dates clear the column rather than keeping stale data")
}

func TestDemoStoreDataset(t *testing.T) {
	store := NewDemoStore()

	rows, err := store.ListLeads()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	leads := make([]crm.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, crm.DecodeLead(row))
	}

	stages := map[crm.Stage]bool{}
	for _, lead := range leads {
		stages[lead.Stage] = true
	}
	assert.True(t, stages[crm.StageUncontacted])
	assert.True(t, stages[crm.StageBooked])
	assert.True(t, stages[crm.StageCompleted])

	events, err := store.ListAppointments()
	require.NoError(t, err)
	assert.Len(t, events, 3)

	sales, err := store.ListSales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "guide", sales[0].Type)
}
