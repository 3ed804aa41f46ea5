package crm

import (
	"testing"
	"time"

	"glowbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func richAt(id string, start, end time.Time) RichEvent {
	return RichEvent{
		Event: models.Appointment{ID: id},
		Start: timePtr(start),
		End:   timePtr(end),
	}
}

func TestResolveTimes(t *testing.T) {
	start := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	s, e := ResolveTimes(&start, nil)
	require.NotNil(t, s)
	require.NotNil(t, e)
	assert.Equal(t, start.Add(time.Hour), *e, "missing end defaults to one hour")

	s, e = ResolveTimes(nil, timePtr(start))
	assert.Nil(t, s)
	assert.Nil(t, e)
}

func TestBuildDayScheduleFillsGaps(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	slots, skipped := BuildDaySchedule([]RichEvent{
		richAt("e2", at(14), at(15)),
		richAt("e1", at(9), at(10)),
	}, day)

	assert.Zero(t, skipped)
	require.Len(t, slots, 5)

	assert.Equal(t, SlotOpen, slots[0].Kind)
	assert.Equal(t, at(0), slots[0].Start)
	assert.Equal(t, at(9), slots[0].End)

	assert.Equal(t, SlotEvent, slots[1].Kind)
	assert.Equal(t, "e1", slots[1].Event.Event.ID)

	assert.Equal(t, SlotOpen, slots[2].Kind)
	assert.Equal(t, at(10), slots[2].Start)
	assert.Equal(t, at(14), slots[2].End)

	assert.Equal(t, SlotEvent, slots[3].Kind)
	assert.Equal(t, "e2", slots[3].Event.Event.ID)

	assert.Equal(t, SlotOpen, slots[4].Kind)
	assert.Equal(t, at(15), slots[4].Start)
	assert.Equal(t, day.Add(23*time.Hour+59*time.Minute), slots[4].End)

	// the slots tile the day with no gaps
	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Start.After(slots[i-1].End), "slot %d starts after a gap", i)
	}
}

func TestBuildDayScheduleEmptyDay(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	slots, skipped := BuildDaySchedule(nil, day)

	assert.Zero(t, skipped)
	require.Len(t, slots, 1)
	assert.Equal(t, SlotOpen, slots[0].Kind)
	assert.Equal(t, day, slots[0].Start)
	assert.Equal(t, day.Add(23*time.Hour+59*time.Minute), slots[0].End)
}

func TestBuildDayScheduleOverlap(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	// e2 sits entirely inside e1's span
	slots, _ := BuildDaySchedule([]RichEvent{
		richAt("e1", at(9), at(12)),
		richAt("e2", at(10), at(11)),
	}, day)

	for _, slot := range slots {
		if slot.Kind == SlotOpen {
			assert.True(t, slot.End.After(slot.Start), "open slot must have positive duration")
		}
	}

	// the trailing open slot resumes after the longer event
	last := slots[len(slots)-1]
	assert.Equal(t, SlotOpen, last.Kind)
	assert.Equal(t, at(12), last.Start)
}

func TestBuildDayScheduleSkipsStartlessEvents(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	slots, skipped := BuildDaySchedule([]RichEvent{
		{Event: models.Appointment{ID: "no-start"}},
		richAt("e1", day.Add(9*time.Hour), day.Add(10*time.Hour)),
	}, day)

	assert.Equal(t, 1, skipped)
	require.Len(t, slots, 3)
	assert.Equal(t, "e1", slots[1].Event.Event.ID)
}
