package crm

import (
	"fmt"
	"testing"
	"time"

	"glowbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachBilling(t *testing.T) {
	leads := []Lead{{ID: "l1"}, {ID: "l2"}}
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	AttachBilling(leads,
		[]models.Invoice{
			{ID: "inv-1", LeadID: "l1", DueAt: &due, Total: 200, Status: "sent"},
			{ID: "inv-2", LeadID: "missing", Total: 50, Status: "sent"},
		},
		[]models.Contract{
			{ID: "c1", LeadID: "l2", Template: "wedding_standard", Status: "sent"},
		})

	require.Len(t, leads[0].Invoices, 1)
	assert.Equal(t, "inv-1", leads[0].Invoices[0].ID)
	require.Len(t, leads[1].Contracts, 1)
	assert.Empty(t, leads[0].Contracts)
}

func TestOverdueInvoices(t *testing.T) {
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	leads := []Lead{{
		ID:   "l1",
		Name: "Dana",
		Invoices: []Invoice{
			{ID: "inv-1", Status: "overdue"},
			{ID: "inv-2", Status: "sent", DueAt: &past},
			{ID: "inv-3", Status: "paid", DueAt: &past},
			{ID: "inv-4", Status: "sent", DueAt: &future},
			{ID: "inv-5", Status: "sent"},
		},
	}}

	got := OverdueInvoices(leads, now)
	require.Len(t, got, 2)
	assert.Equal(t, "l1-inv-inv-1", got[0].ID)
	assert.Equal(t, "l1-inv-inv-2", got[1].ID)
}

func TestUnsignedWeddingContracts(t *testing.T) {
	leads := []Lead{{
		ID: "l1",
		Contracts: []Contract{
			{ID: "c1", Template: "wedding_standard", Status: "sent", Title: "June Wedding"},
			{ID: "c2", Template: "wedding_premium", Status: "signed"},
			{ID: "c3", Template: "editorial_day", Status: "sent"},
			{ID: "c4", Template: "wedding_standard", Status: "draft"},
		},
	}}

	got := UnsignedWeddingContracts(leads)
	require.Len(t, got, 2)
	assert.Equal(t, "June Wedding", got[0].Service)
	assert.Equal(t, "Wedding contract", got[1].Service, "fallback label when title and service are blank")
}

func TestNewInquiries(t *testing.T) {
	leads := []Lead{
		{ID: "l1", Stage: StageUncontacted, Name: "Dana"},
		{ID: "l2", Stage: StageContacted},
		{ID: "l3", Stage: StageUncontacted, Name: ""},
	}

	got := NewInquiries(leads)
	require.Len(t, got, 2)
	assert.Equal(t, "Dana", got[0].Name)
	assert.Equal(t, "Untitled lead", got[1].Name)
}

func TestSearchRequiresAllTokens(t *testing.T) {
	leads := []Lead{
		{ID: "l1", Name: "Alice Park", Email: "alice@example.com"},
		{ID: "l2", Name: "Alice Doe", Email: "doe@example.com"},
		{ID: "l3", Name: "Bo Park"},
	}

	got := Search(leads, "alice park")
	require.Len(t, got, 1, "every token must match, not any token")
	assert.Equal(t, "l1", got[0].LeadID)

	assert.Len(t, Search(leads, "alice"), 2)
	assert.Empty(t, Search(leads, "   "))
	assert.Empty(t, Search(leads, "zelda"))
}

func TestSearchMatchesServiceText(t *testing.T) {
	leads := []Lead{
		{ID: "l1", Name: "Dana", EventType: "Bridal makeup"},
		{ID: "l2", Name: "Mia", Contracts: []Contract{{Service: "Editorial shoot"}}},
	}

	got := Search(leads, "bridal")
	require.Len(t, got, 1)
	assert.Equal(t, "l1", got[0].LeadID)

	got = Search(leads, "editorial")
	require.Len(t, got, 1)
	assert.Equal(t, "l2", got[0].LeadID)
}

func TestSearchCapsResults(t *testing.T) {
	var leads []Lead
	for i := 0; i < 60; i++ {
		leads = append(leads, Lead{ID: fmt.Sprintf("l%d", i), Name: "Avery"})
	}

	got := Search(leads, "avery")
	assert.Len(t, got, 50)
	assert.Equal(t, "l0", got[0].LeadID, "results keep input order")
}
