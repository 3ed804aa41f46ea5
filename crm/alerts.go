package crm

import (
	"strings"
	"time"

	"glowbook-backend/models"
)

const searchResultCap = 50

// AttachBilling hangs the read-only invoice and contract rows off their
// leads so the alert index can see them.
func AttachBilling(leads []Lead, invoices []models.Invoice, contracts []models.Contract) {
	byID := make(map[string]*Lead, len(leads))
	for i := range leads {
		byID[leads[i].ID] = &leads[i]
	}
	for _, inv := range invoices {
		lead, ok := byID[inv.LeadID]
		if !ok {
			continue
		}
		lead.Invoices = append(lead.Invoices, Invoice{
			ID:     inv.ID,
			LeadID: inv.LeadID,
			Kind:   inv.Kind,
			DueAt:  inv.DueAt,
			Total:  inv.Total,
			Status: inv.Status,
		})
	}
	for _, c := range contracts {
		lead, ok := byID[c.LeadID]
		if !ok {
			continue
		}
		lead.Contracts = append(lead.Contracts, Contract{
			ID:       c.ID,
			LeadID:   c.LeadID,
			Template: c.Template,
			Title:    c.Title,
			Service:  c.Service,
			Status:   c.Status,
		})
	}
}

// AlertResult is one row in an alert or search dropdown.
type AlertResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Stage   Stage  `json:"stage,omitempty"`
	LeadID  string `json:"leadId"`
}

func resultFor(lead Lead, id, service string) AlertResult {
	name := lead.Name
	if name == "" {
		name = "Untitled lead"
	}
	return AlertResult{
		ID:      id,
		Name:    name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Service: service,
		Stage:   lead.Stage,
		LeadID:  lead.ID,
	}
}

// OverdueInvoices flags every invoice that is explicitly overdue, or unpaid
// and past its due date.
func OverdueInvoices(leads []Lead, now time.Time) []AlertResult {
	var out []AlertResult
	for _, lead := range leads {
		for _, inv := range lead.Invoices {
			overdue := inv.Status == "overdue" ||
				(inv.Status != "paid" && inv.DueAt != nil && inv.DueAt.Before(now))
			if overdue {
				out = append(out, resultFor(lead, lead.ID+"-inv-"+inv.ID, "Invoice "+inv.ID))
			}
		}
	}
	return out
}

// UnsignedWeddingContracts flags wedding-template contracts that have not
// been signed yet.
func UnsignedWeddingContracts(leads []Lead) []AlertResult {
	var out []AlertResult
	for _, lead := range leads {
		for _, c := range lead.Contracts {
			if !strings.HasPrefix(c.Template, "wedding_") || c.Status == "signed" {
				continue
			}
			service := c.Title
			if service == "" {
				service = c.Service
			}
			if service == "" {
				service = "Wedding contract"
			}
			out = append(out, resultFor(lead, lead.ID+"-contract-"+c.ID, service))
		}
	}
	return out
}

// NewInquiries lists leads still in the uncontacted stage.
func NewInquiries(leads []Lead) []AlertResult {
	var out []AlertResult
	for _, lead := range leads {
		if lead.Stage != StageUncontacted {
			continue
		}
		out = append(out, resultFor(lead, lead.ID+"-new", "New inquiry"))
	}
	return out
}

// Search matches leads against a free-text query. The query is tokenized on
// whitespace and every token must be a substring of the lead's combined
// name, email, phone and service text — AND semantics, not OR. Results keep
// input order and are capped at 50.
func Search(leads []Lead, query string) []AlertResult {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(tokens) == 0 {
		return nil
	}

	var out []AlertResult
	for _, lead := range leads {
		var serviceParts []string
		for _, c := range lead.Contracts {
			if c.Service != "" {
				serviceParts = append(serviceParts, c.Service)
			}
		}
		for _, c := range lead.Contracts {
			if c.Title != "" {
				serviceParts = append(serviceParts, c.Title)
			}
		}
		if lead.Intake.Service != "" {
			serviceParts = append(serviceParts, lead.Intake.Service)
		}
		if lead.EventType != "" {
			serviceParts = append(serviceParts, lead.EventType)
		}
		serviceText := strings.Join(serviceParts, " ")

		haystack := strings.ToLower(strings.Join([]string{
			lead.Name, lead.Email, lead.Phone, serviceText,
		}, " "))

		matched := true
		for _, token := range tokens {
			if !strings.Contains(haystack, token) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		out = append(out, resultFor(lead, lead.ID, serviceText))
		if len(out) >= searchResultCap {
			break
		}
	}
	return out
}
