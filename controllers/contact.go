package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/repository"
	"glowbook-backend/services"
	"glowbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// ContactInput is the public booking form payload. Structured intake fields
// are folded into the stored message so nothing needs a schema change.
type ContactInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Service       string   `json:"service"`
	PreferredDate string   `json:"preferredDate"`
	EventTime     string   `json:"eventTime"`
	Location      string   `json:"location"`
	PartySize     *int     `json:"partySize"`
	AddOns        []string `json:"addOns"`
	Message       string   `json:"message"`
}

// ContactController handles the public booking form.
type ContactController struct {
	Repo   repository.LeadRepository
	Notify *services.NotifyService
}

func NewContactController(repo repository.LeadRepository, notify *services.NotifyService) *ContactController {
	return &ContactController{Repo: repo, Notify: notify}
}

// buildContactMessage writes the form into the message grammar: free text
// first, then Key: Value detail lines.
func buildContactMessage(input ContactInput) string {
	var sections []string
	if text := strings.TrimSpace(input.Message); text != "" {
		sections = append(sections, text)
	}

	var details []string
	addLine := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			details = append(details, key+": "+value)
		}
	}
	addLine("Service", input.Service)
	addLine("Preferred date", input.PreferredDate)
	addLine("Event time", input.EventTime)
	addLine("Location", input.Location)
	if input.PartySize != nil && *input.PartySize > 0 {
		details = append(details, "Party size: "+strconv.Itoa(*input.PartySize))
	}
	addLine("Add-ons", strings.Join(input.AddOns, ", "))
	if len(details) > 0 {
		sections = append(sections, strings.Join(details, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func validateContact(input ContactInput) error {
	if strings.TrimSpace(input.Name) == "" &&
		strings.TrimSpace(input.Email) == "" &&
		strings.TrimSpace(input.Message) == "" {
		return &crm.ValidationError{Message: "please include a name, email, or message"}
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		return &crm.ValidationError{Field: "phone", Message: "invalid phone number format"}
	}
	return nil
}

// SubmitContact accepts a public inquiry, stores it as an uncontacted lead
// and notifies the operator.
func (cc *ContactController) SubmitContact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := validateContact(input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var eventDate *time.Time
	if raw := strings.TrimSpace(input.PreferredDate); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			eventDate = &t
		}
	}

	row, err := cc.Repo.CreateLead(crm.NewLeadInput{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		EventDate: eventDate,
		Message:   buildContactMessage(input),
		Source:    "contact-form",
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not save your inquiry, please try again")
		return
	}

	deliveryID := ""
	if cc.Notify != nil {
		id, err := cc.Notify.BookingInquiry(services.InquiryNotification{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Service:   input.Service,
			Date:      input.PreferredDate,
			Location:  input.Location,
			PartySize: input.PartySize,
			AddOns:    input.AddOns,
			Notes:     input.Message,
		})
		if err != nil {
			// the lead is stored; a failed notification must not fail the form
			log.Printf("Inquiry notification failed for lead %s: %v", row.ID, err)
		} else {
			deliveryID = id
		}
	}

	resp := gin.H{"ok": true, "leadId": row.ID}
	if deliveryID != "" {
		resp["deliveryId"] = deliveryID
	}
	c.JSON(http.StatusCreated, resp)
}
