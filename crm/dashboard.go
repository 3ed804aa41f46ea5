package crm

import (
	"log"
	"sync"
	"time"

	"glowbook-backend/models"
)

// NewLeadInput is what the booking form and the admin "new lead" action
// supply to the persistence collaborator.
type NewLeadInput struct {
	Name      string
	Email     string
	Phone     string
	EventDate *time.Time
	Message   string
	Source    string
}

// LeadSource is the persistence collaborator contract: list newest-first,
// create, full-replace update.
type LeadSource interface {
	ListLeads() ([]models.Lead, error)
	CreateLead(input NewLeadInput) (models.Lead, error)
	UpdateLead(id string, payload LeadUpdatePayload) (models.Lead, error)
}

// FallbackWarning is surfaced as a non-blocking banner when the primary
// source is unreachable and the demo dataset is shown instead.
const FallbackWarning = "Live leads unavailable — showing demo data."

// Dashboard orchestrates the lead list and its edit sessions. Opening a lead
// snapshots a baseline; closing without saving reverts to it; saving
// installs the server's re-decoded lead as both current value and new
// baseline. Dirty state is computed over the persistable projection, so
// view-only churn never looks like an edit.
type Dashboard struct {
	mu        sync.Mutex
	source    LeadSource
	fallback  LeadSource
	leads     []Lead
	baselines map[string]Lead
	degraded  bool
}

func NewDashboard(source, fallback LeadSource) *Dashboard {
	return &Dashboard{
		source:    source,
		fallback:  fallback,
		baselines: map[string]Lead{},
	}
}

// Load refreshes the lead list from the primary source. A failed fetch never
// corrupts state: the dashboard drops to the fallback dataset and reports a
// warning instead of erroring out.
func (d *Dashboard) Load() (warning string, err error) {
	rows, err := d.source.ListLeads()
	if err != nil {
		log.Printf("Failed to load leads: %v", err)
		if d.fallback == nil {
			return "", &TransientError{Op: "list leads", Err: err}
		}
		rows, err = d.fallback.ListLeads()
		if err != nil {
			return "", &TransientError{Op: "list leads", Err: err}
		}
		warning = FallbackWarning
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// leads with an open edit session keep their local value across a
	// refresh; a reload must not silently discard in-progress edits
	open := map[string]Lead{}
	for id := range d.baselines {
		if i, ok := d.find(id); ok {
			open[id] = d.leads[i]
		}
	}

	d.leads = make([]Lead, 0, len(rows))
	for _, row := range rows {
		lead := DecodeLead(row)
		if kept, ok := open[lead.ID]; ok {
			lead = kept
		}
		d.leads = append(d.leads, lead)
	}
	d.degraded = warning != ""
	return warning, nil
}

// Degraded reports whether the dashboard is showing fallback data.
func (d *Dashboard) Degraded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.degraded
}

// Leads returns a copy of the current list.
func (d *Dashboard) Leads() []Lead {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Lead, len(d.leads))
	copy(out, d.leads)
	return out
}

func (d *Dashboard) find(id string) (int, bool) {
	for i := range d.leads {
		if d.leads[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Open starts an edit session, snapshotting the lead as the revert baseline.
func (d *Dashboard) Open(id string) (Lead, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.find(id)
	if !ok {
		return Lead{}, &NotFoundError{ID: id}
	}
	d.baselines[id] = cloneLead(d.leads[i])
	return cloneLead(d.leads[i]), nil
}

// Apply replaces the lead's current value with an optimistic local edit.
// The baseline stays untouched.
func (d *Dashboard) Apply(lead Lead) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.find(lead.ID)
	if !ok {
		return &NotFoundError{ID: lead.ID}
	}
	d.leads[i] = lead
	return nil
}

// IsDirty reports whether the open lead's persistable projection differs
// from its baseline.
func (d *Dashboard) IsDirty(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	baseline, ok := d.baselines[id]
	if !ok {
		return false
	}
	i, found := d.find(id)
	if !found {
		return false
	}
	return Snapshot(d.leads[i]) != Snapshot(baseline)
}

// Close ends the edit session without saving: pending local edits are
// reverted to the baseline and discarded.
func (d *Dashboard) Close(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	baseline, ok := d.baselines[id]
	if !ok {
		return
	}
	if i, found := d.find(id); found && Snapshot(d.leads[i]) != Snapshot(baseline) {
		d.leads[i] = cloneLead(baseline)
	}
	delete(d.baselines, id)
}

// Save persists the open lead. On success the server's returned row is
// decoded and becomes both current value and new baseline. On failure the
// local edits stay exactly as they were — still dirty — so the user can
// retry.
func (d *Dashboard) Save(id string) (Lead, error) {
	d.mu.Lock()
	i, ok := d.find(id)
	if !ok {
		d.mu.Unlock()
		return Lead{}, &NotFoundError{ID: id}
	}
	payload := EncodeLead(d.leads[i])
	d.mu.Unlock()

	row, err := d.source.UpdateLead(id, payload)
	if err != nil {
		return Lead{}, err
	}

	updated := DecodeLead(row)
	d.mu.Lock()
	defer d.mu.Unlock()
	if i, ok := d.find(id); ok {
		d.leads[i] = updated
	}
	d.baselines[id] = cloneLead(updated)
	return cloneLead(updated), nil
}

// Create persists a new lead and prepends it. If the write fails the draft
// is kept locally so the operator's input is not thrown away, and the error
// is returned for the caller to surface.
func (d *Dashboard) Create(input NewLeadInput, draft Lead) (Lead, error) {
	row, err := d.source.CreateLead(input)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		log.Printf("Lead save failed, keeping local copy: %v", err)
		d.leads = append([]Lead{draft}, d.leads...)
		return draft, &TransientError{Op: "create lead", Err: err}
	}
	created := DecodeLead(row)
	d.leads = append([]Lead{created}, d.leads...)
	return created, nil
}

// Remove drops a lead from local state only. Physical deletion is not part
// of the persistence contract.
func (d *Dashboard) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i, ok := d.find(id); ok {
		d.leads = append(d.leads[:i], d.leads[i+1:]...)
	}
	delete(d.baselines, id)
}

// cloneLead deep-copies the slices and maps so a baseline cannot be mutated
// through the working copy.
func cloneLead(l Lead) Lead {
	out := l
	if l.Tags != nil {
		out.Tags = append([]string(nil), l.Tags...)
	}
	if l.AddOns != nil {
		out.AddOns = append([]string(nil), l.AddOns...)
	}
	if l.Notes != nil {
		out.Notes = append([]Note(nil), l.Notes...)
	}
	if l.Invoices != nil {
		out.Invoices = append([]Invoice(nil), l.Invoices...)
	}
	if l.Contracts != nil {
		out.Contracts = append([]Contract(nil), l.Contracts...)
	}
	if l.Intake.AddOns != nil {
		out.Intake.AddOns = append([]string(nil), l.Intake.AddOns...)
	}
	if l.Intake.Unrecognized != nil {
		out.Intake.Unrecognized = make(map[string]string, len(l.Intake.Unrecognized))
		for k, v := range l.Intake.Unrecognized {
			out.Intake.Unrecognized[k] = v
		}
	}
	return out
}
