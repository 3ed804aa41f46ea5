package crm

import (
	"testing"
	"time"

	"glowbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeLeadStageWins(t *testing.T) {
	booked := &Lead{ID: "l1", Stage: StageBooked}

	// a canceled appointment row does not demote a booked lead
	assert.Equal(t, CategoryBooked, Categorize(booked, &models.Appointment{Status: "canceled"}))

	assert.Equal(t, CategoryNew, Categorize(&Lead{Stage: StageUncontacted}, nil))
	assert.Equal(t, CategoryPending, Categorize(&Lead{Stage: StageTrial}, nil))
	assert.Equal(t, CategoryOther, Categorize(&Lead{Stage: StageLost}, nil))
}

func TestCategorizeFallsBackToEventStatus(t *testing.T) {
	assert.Equal(t, CategoryPending, Categorize(nil, &models.Appointment{Status: "tentative"}))
	assert.Equal(t, CategoryBooked, Categorize(nil, &models.Appointment{Status: "completed"}))
	assert.Equal(t, CategoryOther, Categorize(nil, &models.Appointment{Status: "canceled"}))
	assert.Equal(t, CategoryOther, Categorize(nil, nil))
}

func TestEnrichEventsLinksLeads(t *testing.T) {
	start := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	leadID := "l1"

	rich := EnrichEvents([]models.Appointment{
		{ID: "e1", Start: &start, LeadID: &leadID, Status: "tentative"},
		{ID: "e2", Start: &start, Status: "booked"},
	}, []Lead{{ID: "l1", Stage: StageConfirmed}})

	require.Len(t, rich, 2)

	require.NotNil(t, rich[0].Lead)
	assert.Equal(t, CategoryBooked, rich[0].Category, "confirmed lead beats tentative status")
	require.NotNil(t, rich[0].End)
	assert.Equal(t, start.Add(time.Hour), *rich[0].End)

	assert.Nil(t, rich[1].Lead)
	assert.Equal(t, CategoryBooked, rich[1].Category)
}

func TestEventsByDayExcludesStartless(t *testing.T) {
	start := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	byDay := EventsByDay([]RichEvent{
		richAt("e1", start, start.Add(time.Hour)),
		{Event: models.Appointment{ID: "no-start"}},
	})

	require.Len(t, byDay, 1)
	assert.Len(t, byDay["2025-05-10"], 1)
}

func TestDayStyleForPrecedence(t *testing.T) {
	newEv := RichEvent{Category: CategoryNew}
	pending := RichEvent{Category: CategoryPending}
	booked := RichEvent{Category: CategoryBooked}
	other := RichEvent{Category: CategoryOther}

	assert.Equal(t, CategoryNew, DayStyleFor([]RichEvent{booked, pending, newEv}))
	assert.Equal(t, CategoryPending, DayStyleFor([]RichEvent{booked, pending}))
	assert.Equal(t, CategoryBooked, DayStyleFor([]RichEvent{other, booked}))
	assert.Equal(t, CategoryOther, DayStyleFor([]RichEvent{other}))
	assert.Equal(t, CategoryPending, DayStyleFor(nil), "empty days read as open availability")
}
