package crm

import (
	"sort"
	"time"
)

// ResolveTimes fills in an event's effective start and end. A missing end
// defaults to one hour after start; a missing start leaves both nil and the
// event is skipped by the schedule builder.
func ResolveTimes(start, end *time.Time) (*time.Time, *time.Time) {
	if start == nil {
		return nil, nil
	}
	if end == nil {
		defaulted := start.Add(time.Hour)
		return start, &defaulted
	}
	return start, end
}

// BuildDaySchedule lays a day's events out as contiguous slots from 00:00 to
// 23:59 local, filling the gaps with synthetic open slots. Events without a
// resolvable start are not scheduled; their count is returned so the caller
// can surface the discrepancy instead of losing it silently.
//
// Overlapping events are processed in start order; the cursor only moves
// forward, so an event inside another's span simply produces no open slot
// before it. Open slots are never emitted with non-positive duration.
func BuildDaySchedule(events []RichEvent, day time.Time) ([]Slot, int) {
	sorted := make([]RichEvent, 0, len(events))
	skipped := 0
	for _, rich := range events {
		if rich.Start == nil {
			skipped++
			continue
		}
		sorted = append(sorted, rich)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(*sorted[j].Start)
	})

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, day.Location())

	slots := make([]Slot, 0, len(sorted)*2+1)
	cursor := dayStart

	for i := range sorted {
		rich := sorted[i]
		start := *rich.Start
		end := start.Add(time.Hour)
		if rich.End != nil {
			end = *rich.End
		}
		if start.After(cursor) {
			slots = append(slots, Slot{Kind: SlotOpen, Start: cursor, End: start})
		}
		slots = append(slots, Slot{Kind: SlotEvent, Start: start, End: end, Event: &sorted[i]})
		if end.After(cursor) {
			cursor = end
		}
	}

	if cursor.Before(dayEnd) {
		slots = append(slots, Slot{Kind: SlotOpen, Start: cursor, End: dayEnd})
	}

	return slots, skipped
}
