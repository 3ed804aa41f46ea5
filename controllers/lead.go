package controllers

import (
	"net/http"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/repository"
	"glowbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateLeadInput defines the expected JSON structure for creating a lead
type CreateLeadInput struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	EventDate *time.Time `json:"eventDate"`
	Message   string     `json:"message"`
	Source    string     `json:"source"`
}

// NoteInput is one note entry in a lead draft
type NoteInput struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	At   *time.Time `json:"at"`
}

// LeadDraftInput carries the editable fields of a lead. Saves are a full
// replace of the persisted projection, so every field is taken as-is.
type LeadDraftInput struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Stage         string     `json:"stage"`
	Source        string     `json:"source"`
	EventType     string     `json:"eventType"`
	EventTime     string     `json:"eventTime"`
	Location      string     `json:"location"`
	PartySize     *int       `json:"partySize"`
	AddOns        []string   `json:"addOns"`
	DateOfService *time.Time `json:"dateOfService"`
	PreferredDate *time.Time `json:"preferredDate"`
	InternalNotes string     `json:"internalNotes"`
	SkinType      string     `json:"skinType"`
	Allergies     string     `json:"allergies"`
	Style         string     `json:"style"`
	Refs          string     `json:"refs"`
	IntakeNotes   string     `json:"intakeNotes"`
	Notes         []NoteInput `json:"notes"`
}

// apply lays the draft over the lead's current value. Identity, creation
// time, billing rows and unrecognized legacy keys are not editable.
func (in LeadDraftInput) apply(base crm.Lead) crm.Lead {
	lead := base
	lead.Name = in.Name
	lead.Email = in.Email
	lead.Phone = in.Phone
	lead.Stage = crm.NormalizeStage(in.Stage)
	lead.Source = in.Source
	lead.EventType = in.EventType
	lead.EventTime = in.EventTime
	lead.Location = in.Location
	lead.PartySize = in.PartySize
	lead.AddOns = in.AddOns
	lead.DateOfService = in.DateOfService
	lead.InternalNotes = in.InternalNotes
	lead.Intake.Service = in.EventType
	lead.Intake.PreferredDate = in.PreferredDate
	lead.Intake.SkinType = in.SkinType
	lead.Intake.Allergies = in.Allergies
	lead.Intake.Style = in.Style
	lead.Intake.Refs = in.Refs
	lead.Intake.Notes = in.IntakeNotes
	if in.Notes != nil {
		notes := make([]crm.Note, 0, len(in.Notes))
		for _, n := range in.Notes {
			note := crm.Note{ID: n.ID, Text: n.Text}
			if n.At != nil {
				note.At = *n.At
			}
			notes = append(notes, note)
		}
		lead.Notes = notes
	}
	return lead
}

// LeadController serves the lead list and the edit-session flow on top of
// the dashboard state.
type LeadController struct {
	Repo repository.LeadRepository
	Dash *crm.Dashboard
}

func NewLeadController(repo repository.LeadRepository, dash *crm.Dashboard) *LeadController {
	return &LeadController{Repo: repo, Dash: dash}
}

func (lc *LeadController) loadLeads() ([]crm.Lead, string) {
	warning, _ := lc.Dash.Load()
	leads := lc.Dash.Leads()

	invoices, err := lc.Repo.ListInvoices()
	if err != nil && warning == "" {
		warning = "Billing data unavailable."
	}
	contracts, err := lc.Repo.ListContracts()
	if err != nil && warning == "" {
		warning = "Billing data unavailable."
	}
	crm.AttachBilling(leads, invoices, contracts)
	return leads, warning
}

// GetLeads returns the decoded lead list, newest first
func (lc *LeadController) GetLeads(c *gin.Context) {
	leads, warning := lc.loadLeads()
	resp := gin.H{"ok": true, "leads": leads}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// CreateLead handles the admin "new lead" action
func (lc *LeadController) CreateLead(c *gin.Context) {
	var input CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name == "" && input.Email == "" && input.Message == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "A name, email, or message is required")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	source := input.Source
	if source == "" {
		source = "admin-dashboard"
	}

	created, err := lc.Dash.Create(crm.NewLeadInput{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		EventDate: input.EventDate,
		Message:   input.Message,
		Source:    source,
	}, crm.Lead{
		ID:            "local-" + time.Now().Format("20060102150405"),
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Stage:         crm.StageUncontacted,
		Source:        source,
		CreatedAt:     time.Now(),
		DateOfService: input.EventDate,
	})
	if err != nil {
		// the draft is kept in local state; tell the caller the write failed
		c.JSON(http.StatusAccepted, gin.H{"ok": false, "lead": created, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "lead": created})
}

// OpenLead starts an edit session and snapshots the revert baseline
func (lc *LeadController) OpenLead(c *gin.Context) {
	lead, err := lc.Dash.Open(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "lead": lead, "dirty": false})
}

// UpdateLead applies an optimistic local edit to the open session
func (lc *LeadController) UpdateLead(c *gin.Context) {
	id := c.Param("id")

	var input LeadDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// read the current value without re-opening, which would clobber the
	// baseline of an in-flight session
	lead, found := lc.findLead(id)
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Lead not found")
		return
	}

	if err := lc.Dash.Apply(input.apply(lead)); err != nil {
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dirty": lc.Dash.IsDirty(id)})
}

func (lc *LeadController) findLead(id string) (crm.Lead, bool) {
	for _, lead := range lc.Dash.Leads() {
		if lead.ID == id {
			return lead, true
		}
	}
	return crm.Lead{}, false
}

// SaveLead persists the open session's edits
func (lc *LeadController) SaveLead(c *gin.Context) {
	id := c.Param("id")
	lead, err := lc.Dash.Save(id)
	if err != nil {
		if crm.IsNotFoundError(err) {
			// surfaced as a save error, edits stay in place
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "lead": lead, "dirty": false})
}

// CloseLead ends the session, reverting unsaved edits to the baseline
func (lc *LeadController) CloseLead(c *gin.Context) {
	lc.Dash.Close(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteLead removes the lead from dashboard state. Rows are never
// physically deleted by this backend.
func (lc *LeadController) DeleteLead(c *gin.Context) {
	lc.Dash.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Lead removed from dashboard"})
}
