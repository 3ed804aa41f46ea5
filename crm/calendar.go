package crm

import (
	"time"

	"glowbook-backend/models"
)

// Categorize classifies a calendar item for visual coding. The lead's
// workflow stage is authoritative once a lead exists; only without one (or
// with an unrecognized stage) does the raw appointment status decide.
func Categorize(lead *Lead, event *models.Appointment) Category {
	if lead != nil {
		switch lead.Stage {
		case StageUncontacted:
			return CategoryNew
		case StageContacted, StageDeposit, StageTrial, StageChanges:
			return CategoryPending
		case StageBooked, StageConfirmed, StageCompleted:
			return CategoryBooked
		}
	}
	if event != nil {
		switch event.Status {
		case "tentative":
			return CategoryPending
		case "booked", "completed":
			return CategoryBooked
		case "canceled":
			return CategoryOther
		}
	}
	return CategoryOther
}

// EnrichEvents resolves each appointment's times, looks up its lead, and
// derives its category.
func EnrichEvents(events []models.Appointment, leads []Lead) []RichEvent {
	leadByID := make(map[string]*Lead, len(leads))
	for i := range leads {
		leadByID[leads[i].ID] = &leads[i]
	}

	rich := make([]RichEvent, 0, len(events))
	for _, event := range events {
		start, end := ResolveTimes(event.Start, event.End)
		var lead *Lead
		if event.LeadID != nil {
			lead = leadByID[*event.LeadID]
		}
		rich = append(rich, RichEvent{
			Event:    event,
			Start:    start,
			End:      end,
			Lead:     lead,
			Category: Categorize(lead, &event),
		})
	}
	return rich
}

// DayKey is the local calendar date, formatted YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// EventsByDay buckets events under the local calendar date of their resolved
// start. Events with no usable start are left out entirely, never grouped
// under a sentinel key.
func EventsByDay(events []RichEvent) map[string][]RichEvent {
	byDay := map[string][]RichEvent{}
	for _, rich := range events {
		if rich.Start == nil {
			continue
		}
		key := DayKey(*rich.Start)
		byDay[key] = append(byDay[key], rich)
	}
	return byDay
}

// DayStyleFor picks the dominant category hint for a day cell. Mixed days
// resolve new > pending > booked. A day with no events reads as pending:
// the calendar highlights open availability, not absence of data.
func DayStyleFor(items []RichEvent) Category {
	if len(items) == 0 {
		return CategoryPending
	}
	has := map[Category]bool{}
	for _, item := range items {
		has[item.Category] = true
	}
	switch {
	case has[CategoryNew]:
		return CategoryNew
	case has[CategoryPending]:
		return CategoryPending
	case has[CategoryBooked]:
		return CategoryBooked
	default:
		return CategoryOther
	}
}
