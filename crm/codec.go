package crm

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"glowbook-backend/models"
)

// LeadUpdatePayload is the persistable projection of a rich Lead: exactly the
// columns the store knows about, with everything else folded into Message.
// All fields are plain strings so two payloads compare with ==; empty string
// means null at the repository boundary.
type LeadUpdatePayload struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	EventDate string // RFC3339, or empty
	Message   string
	Source    string
}

// LeadSnapshot is the payload plus stage, used for dirty checking. Stage is
// carried inside Message too, but comparing it explicitly keeps the check
// honest if the message build ever changes.
type LeadSnapshot struct {
	LeadUpdatePayload
	Stage Stage
}

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
	digitRun       = regexp.MustCompile(`\d+`)
)

// detail keys the codec itself reads or writes; anything else found in a
// message is preserved in Intake.Unrecognized.
var knownDetailKeys = map[string]bool{
	"service":         true,
	"preferred date":  true,
	"event time":      true,
	"location":        true,
	"party size":      true,
	"add-ons":         true,
	"stage":           true,
	"phone":           true,
	"email":           true,
	"source":          true,
	"skin type":       true,
	"allergies":       true,
	"preferred style": true,
	"reference links": true,
	"internal notes":  true,
	"intake notes":    true,
}

// parseMessage splits a message blob into the primary free-text note (first
// paragraph) and the Key: Value detail lines that follow. A message with no
// blank-line break is all note, no details.
func parseMessage(raw string) (string, map[string]string) {
	details := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return "", details
	}
	parts := paragraphBreak.Split(raw, -1)
	note := strings.TrimSpace(parts[0])
	for _, line := range strings.Split(strings.Join(parts[1:], "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}
		details[key] = value
	}
	return note, details
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

// parseDate is lenient: an unparseable value is dropped, never an error.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// parsePartySize pulls the first run of digits out of free text, so
// "6 guests" parses to 6. No digits means no party size, not zero.
func parsePartySize(raw string) *int {
	match := digitRun.FindString(raw)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

func splitAddOns(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DecodeLead turns a persisted row into the rich view the dashboard edits.
func DecodeLead(row models.Lead) Lead {
	message := ""
	if row.Message != nil {
		message = *row.Message
	}
	note, details := parseMessage(message)

	primaryNote := note
	if primaryNote == "" {
		primaryNote = strings.TrimSpace(message)
	}

	intake := Intake{
		CapturedAt:     row.CreatedAt,
		Service:        details["service"],
		PreferredDate:  parseDate(details["preferred date"]),
		EventTime:      details["event time"],
		Location:       details["location"],
		PartySize:      parsePartySize(details["party size"]),
		SkinType:       details["skin type"],
		Allergies:      details["allergies"],
		Style:          details["preferred style"],
		Refs:           details["reference links"],
		Notes:          details["intake notes"],
		InitialMessage: primaryNote,
	}
	if raw := details["add-ons"]; raw != "" {
		intake.AddOns = splitAddOns(raw)
	}
	for key, value := range details {
		if knownDetailKeys[key] {
			continue
		}
		if intake.Unrecognized == nil {
			intake.Unrecognized = map[string]string{}
		}
		intake.Unrecognized[key] = value
	}

	stage := StageUncontacted
	if raw := details["stage"]; raw != "" {
		stage = NormalizeStage(raw)
	}

	name := "New inquiry"
	if row.Name != nil && strings.TrimSpace(*row.Name) != "" {
		name = *row.Name
	}

	email := row.Email
	if email == EmailPlaceholder {
		// the sentinel must never leak into the UI as a real address
		email = ""
	}

	dateOfService := row.EventDate
	if dateOfService == nil {
		dateOfService = intake.PreferredDate
	}

	lead := Lead{
		ID:            row.ID,
		Name:          name,
		Email:         email,
		Stage:         stage,
		CreatedAt:     row.CreatedAt,
		DateOfService: dateOfService,
		EventType:     intake.Service,
		EventTime:     intake.EventTime,
		Location:      intake.Location,
		PartySize:     intake.PartySize,
		AddOns:        intake.AddOns,
		InternalNotes: details["internal notes"],
		Intake:        intake,
	}
	if row.Phone != nil {
		lead.Phone = *row.Phone
	}
	if row.Source != nil {
		lead.Source = *row.Source
		lead.Tags = []string{*row.Source}
	}
	if primaryNote != "" {
		lead.Notes = []Note{{ID: "msg-" + row.ID, Text: primaryNote, At: row.CreatedAt}}
	}
	return lead
}

func formatDateForMessage(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// BuildMessage rebuilds the message blob: primary note, then the Key: Value
// detail block, then an extra-notes block. Empty sections are omitted so the
// result never has dangling separators.
func BuildMessage(l Lead) string {
	primary := l.PrimaryNote()
	if primary == "" {
		primary = l.Intake.InitialMessage
	}
	primary = strings.TrimSpace(primary)

	service := l.EventType
	if service == "" {
		service = l.Intake.Service
	}
	preferredDate := l.Intake.PreferredDate
	if preferredDate == nil {
		preferredDate = l.DateOfService
	}
	eventTime := l.EventTime
	if eventTime == "" {
		eventTime = l.Intake.EventTime
	}
	location := l.Location
	if location == "" {
		location = l.Intake.Location
	}
	partySize := l.PartySize
	if partySize == nil {
		partySize = l.Intake.PartySize
	}
	addOns := l.AddOns
	if len(addOns) == 0 {
		addOns = l.Intake.AddOns
	}

	var details []string
	push := func(key, value string) {
		if value != "" {
			details = append(details, key+": "+value)
		}
	}
	push("Service", service)
	push("Preferred date", formatDateForMessage(preferredDate))
	push("Event time", eventTime)
	push("Location", location)
	if partySize != nil {
		push("Party size", strconv.Itoa(*partySize))
	}
	if len(addOns) > 0 {
		var clean []string
		for _, item := range addOns {
			if item = strings.TrimSpace(item); item != "" {
				clean = append(clean, item)
			}
		}
		push("Add-ons", strings.Join(clean, ", "))
	}
	if l.Stage != "" {
		push("Stage", string(l.Stage))
	}
	push("Phone", strings.TrimSpace(l.Phone))
	if email := strings.TrimSpace(l.Email); email != "" && email != EmailPlaceholder {
		push("Email", email)
	}
	push("Source", strings.TrimSpace(l.Source))
	push("Skin type", l.Intake.SkinType)
	push("Allergies", l.Intake.Allergies)
	push("Preferred style", l.Intake.Style)
	push("Reference links", l.Intake.Refs)

	// legacy keys we never mapped ride along so nothing is lost on save
	if len(l.Intake.Unrecognized) > 0 {
		keys := make([]string, 0, len(l.Intake.Unrecognized))
		for key := range l.Intake.Unrecognized {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			push(key, l.Intake.Unrecognized[key])
		}
	}

	var extra []string
	if l.InternalNotes != "" {
		extra = append(extra, "Internal notes: "+l.InternalNotes)
	}
	if l.Intake.Notes != "" {
		extra = append(extra, "Intake notes: "+l.Intake.Notes)
	}
	if len(l.Notes) > 1 {
		for _, n := range l.Notes[1:] {
			if strings.TrimSpace(n.Text) == "" {
				continue
			}
			if n.At.IsZero() {
				extra = append(extra, n.Text)
			} else {
				extra = append(extra, "Note ("+n.At.Format(time.RFC3339)+"): "+n.Text)
			}
		}
	}

	var sections []string
	for _, section := range []string{primary, strings.Join(details, "\n"), strings.Join(extra, "\n")} {
		if strings.TrimSpace(section) != "" {
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n\n")
}

// EncodeLead flattens a rich Lead back to the persisted shape. Inverse of
// DecodeLead up to formatting: stage, intake fields and the primary note
// round-trip exactly.
func EncodeLead(l Lead) LeadUpdatePayload {
	email := strings.TrimSpace(l.Email)
	if email == "" {
		email = EmailPlaceholder
	}

	eventDate := l.DateOfService
	if eventDate == nil {
		eventDate = l.Intake.PreferredDate
	}
	eventDateISO := ""
	if eventDate != nil {
		eventDateISO = eventDate.UTC().Format(time.RFC3339)
	}

	return LeadUpdatePayload{
		ID:        l.ID,
		Name:      strings.TrimSpace(l.Name),
		Email:     email,
		Phone:     strings.TrimSpace(l.Phone),
		EventDate: eventDateISO,
		Message:   BuildMessage(l),
		Source:    strings.TrimSpace(l.Source),
	}
}

// Snapshot is the dirty-check projection: transient view-only fields cannot
// make a lead look edited, only what would actually persist.
func Snapshot(l Lead) LeadSnapshot {
	return LeadSnapshot{LeadUpdatePayload: EncodeLead(l), Stage: l.Stage}
}
