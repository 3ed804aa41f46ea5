package controllers

import (
	"net/http"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/repository"
	"glowbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardController assembles the admin home view: KPI strip, calendar
// month buckets, the focused day's schedule, and the alert dropdowns.
type DashboardController struct {
	Repo repository.LeadRepository
	Dash *crm.Dashboard
}

func NewDashboardController(repo repository.LeadRepository, dash *crm.Dashboard) *DashboardController {
	return &DashboardController{Repo: repo, Dash: dash}
}

type daySchedule struct {
	Date    string     `json:"date"`
	Label   string     `json:"label"`
	Slots   []slotView `json:"slots"`
	Skipped int        `json:"skipped,omitempty"`
}

type slotView struct {
	Kind     string     `json:"kind"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
	Title    string     `json:"title,omitempty"`
	Service  string     `json:"service,omitempty"`
	Location string     `json:"location,omitempty"`
	Category string     `json:"category,omitempty"`
	LeadID   string     `json:"leadId,omitempty"`
	LeadName string     `json:"leadName,omitempty"`
}

func slotViews(slots []crm.Slot) []slotView {
	out := make([]slotView, 0, len(slots))
	for _, s := range slots {
		view := slotView{Kind: string(s.Kind), Start: s.Start, End: s.End}
		if s.Event != nil {
			view.Title = s.Event.Event.Title
			view.Service = s.Event.Event.Service
			view.Location = s.Event.Event.Location
			view.Category = string(s.Event.Category)
			if s.Event.Lead != nil {
				view.LeadID = s.Event.Lead.ID
				view.LeadName = s.Event.Lead.Name
			}
		}
		out = append(out, view)
	}
	return out
}

// GetDashboard serves the whole admin home payload in one round trip.
// Query params: timeframe (today|tomorrow|week), focus (YYYY-MM-DD, defaults
// to today), q (free-text search).
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	now := time.Now()
	tf := crm.TimeframeFor(c.DefaultQuery("timeframe", "today"), now)

	focus := utils.BeginningOfDay(now)
	if raw := c.Query("focus"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid focus date, expected YYYY-MM-DD")
			return
		}
		focus = parsed
	}

	warning, err := dc.Dash.Load()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, err.Error())
		return
	}
	leads := dc.Dash.Leads()

	events, err := dc.Repo.ListAppointments()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not load appointments: "+err.Error())
		return
	}
	sales, err := dc.Repo.ListSales()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not load sales: "+err.Error())
		return
	}
	invoices, _ := dc.Repo.ListInvoices()
	contracts, _ := dc.Repo.ListContracts()
	crm.AttachBilling(leads, invoices, contracts)

	summary := crm.Aggregate(events, sales, tf)

	// sparkline over the window's appointment revenue, positional buckets
	var amounts []float64
	for _, event := range crm.FilterEvents(events, tf) {
		if event.Price != nil {
			amounts = append(amounts, *event.Price)
		}
	}
	series := crm.BucketSeries(amounts, 12)

	rich := crm.EnrichEvents(events, leads)
	byDay := crm.EventsByDay(rich)
	dayStyles := make(map[string]string, len(byDay))
	for key, items := range byDay {
		dayStyles[key] = string(crm.DayStyleFor(items))
	}

	slots, skipped := crm.BuildDaySchedule(byDay[crm.DayKey(focus)], focus)

	overdue := crm.OverdueInvoices(leads, now)
	unsigned := crm.UnsignedWeddingContracts(leads)
	inquiries := crm.NewInquiries(leads)

	resp := gin.H{
		"ok": true,
		"timeframe": gin.H{
			"key":   c.DefaultQuery("timeframe", "today"),
			"label": tf.Label,
			"start": tf.Start,
			"end":   tf.End,
		},
		"kpis":           summary,
		"revenueDisplay": utils.FormatUSD(summary.ServiceRevenue + summary.GuideRevenue),
		"revenueSeries":  series,
		"leadsInWindow":  len(crm.FilterLeads(leads, tf)),
		"dayStyles":      dayStyles,
		"schedule": daySchedule{
			Date:    crm.DayKey(focus),
			Label:   utils.RelativeDayLabel(focus, now),
			Slots:   slotViews(slots),
			Skipped: skipped,
		},
		"alerts": gin.H{
			"overdueInvoices": overdue,
			"unsignedWedding": unsigned,
			"newInquiries":    inquiries,
			"total":           len(overdue) + len(unsigned) + len(inquiries),
		},
		"degraded": dc.Dash.Degraded(),
	}
	if q := c.Query("q"); q != "" {
		resp["search"] = crm.Search(leads, q)
	}
	if warning != "" {
		resp["warning"] = warning
	}

	c.JSON(http.StatusOK, resp)
}

// SearchLeads serves the header search dropdown on its own endpoint
func (dc *DashboardController) SearchLeads(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "results": []crm.AlertResult{}})
		return
	}

	warning, err := dc.Dash.Load()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, err.Error())
		return
	}
	leads := dc.Dash.Leads()
	contracts, _ := dc.Repo.ListContracts()
	crm.AttachBilling(leads, nil, contracts)

	resp := gin.H{"ok": true, "results": crm.Search(leads, q)}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}
