package crm

import (
	"testing"
	"time"

	"glowbook-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestTimeframeContainsIsHalfOpen(t *testing.T) {
	now := time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC)
	tf := TimeframeFor("today", now)

	assert.True(t, tf.Contains(tf.Start))
	assert.False(t, tf.Contains(tf.End), "an event at End belongs to the next window")
	assert.True(t, tf.Contains(tf.End.Add(-time.Second)))
}

func TestTimeframeForWindows(t *testing.T) {
	now := time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC)
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	today := TimeframeFor("today", now)
	assert.Equal(t, day, today.Start)
	assert.Equal(t, day.AddDate(0, 0, 1), today.End)

	tomorrow := TimeframeFor("tomorrow", now)
	assert.Equal(t, day.AddDate(0, 0, 1), tomorrow.Start)
	assert.Equal(t, day.AddDate(0, 0, 2), tomorrow.End)

	week := TimeframeFor("week", now)
	assert.Equal(t, day, week.Start)
	assert.Equal(t, day.AddDate(0, 0, 7), week.End)

	assert.Equal(t, "Today", TimeframeFor("bogus", now).Label, "unknown keys fall back to today")
}

func TestAggregate(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	tf := Timeframe{Start: day, End: day.AddDate(0, 0, 1)}

	in := day.Add(10 * time.Hour)
	out := day.AddDate(0, 0, 1) // exactly at End: excluded
	p380, p120 := 380.0, 120.0

	events := []models.Appointment{
		{ID: "e1", Start: &in, Service: "wedding", Price: &p380, Status: "booked"},
		{ID: "e2", Start: &in, Service: "Bridal Trial", Price: &p120, Status: "tentative"},
		{ID: "e3", Start: &out, Service: "wedding", Price: &p380, Status: "booked"},
		{ID: "e4", Service: "wedding", Price: &p380, Status: "booked"}, // no start
	}
	sales := []models.Sale{
		{ID: "s1", Amount: 59, Type: "guide", CreatedAt: in},
		{ID: "s2", Amount: 25, Type: "product", CreatedAt: in},
		{ID: "s3", Amount: 59, Type: "guide", CreatedAt: out},
	}

	got := Aggregate(events, sales, tf)

	assert.Equal(t, 1, got.Bookings, "tentative and out-of-window events do not count")
	assert.Equal(t, 1, got.Trials)
	assert.Equal(t, 500.0, got.ServiceRevenue, "revenue sums all in-window events regardless of status")
	assert.Equal(t, 59.0, got.GuideRevenue)
}

func TestBucketSeries(t *testing.T) {
	assert.Equal(t, []float64{30, 70, 110}, BucketSeries([]float64{10, 20, 30, 40, 50, 60}, 3))
	assert.Equal(t, []float64{10, 20, 0}, BucketSeries([]float64{10, 20}, 3))
	assert.Len(t, BucketSeries(nil, 0), 12, "bucket count defaults to 12")
	assert.Equal(t, []float64{0, 0}, BucketSeries(nil, 2))
}

func TestFilterLeadsUsesServiceDateThenCreation(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	tf := Timeframe{Start: day, End: day.AddDate(0, 0, 1)}

	inService := day.Add(9 * time.Hour)
	outService := day.AddDate(0, 0, 5)

	leads := []Lead{
		{ID: "l1", DateOfService: &inService, CreatedAt: day.AddDate(0, 0, -30)},
		{ID: "l2", DateOfService: &outService, CreatedAt: day},
		{ID: "l3", CreatedAt: day.Add(time.Hour)},
	}

	got := FilterLeads(leads, tf)
	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"l1", "l3"}, ids, "service date wins over creation time when present")
}
