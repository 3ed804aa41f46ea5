package crm

import (
	"strings"
	"time"

	"glowbook-backend/models"
)

// EmailPlaceholder is the persistence contract's stand-in for "email required
// by schema but not supplied". It must never surface as a real address.
const EmailPlaceholder = "no-email@placeholder.invalid"

type Stage string

const (
	StageUncontacted Stage = "uncontacted"
	StageContacted   Stage = "contacted"
	StageDeposit     Stage = "deposit"
	StageTrial       Stage = "trial"
	StageBooked      Stage = "booked"
	StageConfirmed   Stage = "confirmed"
	StageChanges     Stage = "changes"
	StageCompleted   Stage = "completed"
	StageLost        Stage = "lost"
)

// Stages is ordered: it doubles as the pipeline workflow and a sort rank.
var Stages = []Stage{
	StageUncontacted,
	StageContacted,
	StageDeposit,
	StageTrial,
	StageBooked,
	StageConfirmed,
	StageChanges,
	StageCompleted,
	StageLost,
}

// NormalizeStage matches raw text against the known stages, case-insensitive.
// Anything unrecognized falls back to uncontacted.
func NormalizeStage(raw string) Stage {
	for _, s := range Stages {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s
		}
	}
	return StageUncontacted
}

// StageRank returns the pipeline position of a stage, or len(Stages) for
// unknown values so they sort last.
func StageRank(s Stage) int {
	for i, known := range Stages {
		if known == s {
			return i
		}
	}
	return len(Stages)
}

type Note struct {
	ID   string
	Text string
	At   time.Time
}

// Intake holds the structured event-planning details captured for a lead.
// Everything here rides inside the persisted row's message blob; Unrecognized
// collects legacy Key: Value lines we don't map so nothing is silently lost.
type Intake struct {
	Service        string
	PreferredDate  *time.Time
	EventTime      string
	Location       string
	PartySize      *int
	AddOns         []string
	InitialMessage string
	SkinType       string
	Allergies      string
	Style          string
	Refs           string
	Notes          string
	CapturedAt     time.Time
	Unrecognized   map[string]string
}

type Invoice struct {
	ID     string
	LeadID string
	Kind   string
	DueAt  *time.Time
	Total  float64
	Status string // draft, sent, paid, overdue, void
}

type Contract struct {
	ID       string
	LeadID   string
	Template string // e.g. "wedding_standard"
	Title    string
	Service  string
	Status   string // draft, sent, signed, void
}

// Lead is the rich in-memory view the dashboard works with. It is built from
// a persisted row by DecodeLead and flattened back by EncodeLead.
type Lead struct {
	ID            string
	Name          string
	Email         string // empty when the row held the placeholder
	Phone         string
	Stage         Stage
	Source        string
	Tags          []string
	CreatedAt     time.Time
	DateOfService *time.Time // eventDate wins, preferred-date detail is the fallback
	LastContactAt *time.Time
	EventType     string
	EventTime     string
	Location      string
	PartySize     *int
	AddOns        []string
	Notes         []Note // first entry is the primary note
	InternalNotes string
	Intake        Intake
	Invoices      []Invoice
	Contracts     []Contract
}

// PrimaryNote returns the text of the first note, if any.
func (l *Lead) PrimaryNote() string {
	if len(l.Notes) > 0 {
		return l.Notes[0].Text
	}
	return ""
}

type Category string

const (
	CategoryNew     Category = "new"
	CategoryPending Category = "pending"
	CategoryBooked  Category = "booked"
	CategoryOther   Category = "other"
)

// RichEvent is an appointment resolved against its lead and timestamps.
type RichEvent struct {
	Event    models.Appointment
	Start    *time.Time
	End      *time.Time
	Lead     *Lead
	Category Category
}

type SlotKind string

const (
	SlotOpen  SlotKind = "open"
	SlotEvent SlotKind = "event"
)

// Slot is one contiguous stretch of a day, either occupied or available.
type Slot struct {
	Kind  SlotKind
	Start time.Time
	End   time.Time
	Event *RichEvent // set for event slots
}

// Timeframe is a half-open interval [Start, End).
type Timeframe struct {
	Start time.Time
	End   time.Time
	Label string
}

func (tf Timeframe) Contains(t time.Time) bool {
	return !t.Before(tf.Start) && t.Before(tf.End)
}

// TimeframeFor builds the dashboard's named windows relative to now.
// Unknown keys fall back to today.
func TimeframeFor(key string, now time.Time) Timeframe {
	day := startOfDay(now)
	switch key {
	case "tomorrow":
		start := day.AddDate(0, 0, 1)
		return Timeframe{Start: start, End: start.AddDate(0, 0, 1), Label: "Tomorrow"}
	case "week":
		return Timeframe{Start: day, End: day.AddDate(0, 0, 7), Label: "This Week"}
	default:
		return Timeframe{Start: day, End: day.AddDate(0, 0, 1), Label: "Today"}
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

