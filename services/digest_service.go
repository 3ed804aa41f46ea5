package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"glowbook-backend/crm"
	"glowbook-backend/repository"

	"github.com/robfig/cron/v3"
)

// DigestService emails the operator a morning summary of the day ahead.
type DigestService struct {
	repo   repository.LeadRepository
	notify *NotifyService
	cron   *cron.Cron
}

func NewDigestService(repo repository.LeadRepository, notify *NotifyService) *DigestService {
	return &DigestService{repo: repo, notify: notify}
}

// StartScheduler runs the digest every day at 7 AM.
func (s *DigestService) StartScheduler() {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("0 7 * * *", s.SendDailyDigest); err != nil {
		log.Printf("Failed to schedule daily digest: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Daily digest scheduler started")
}

func (s *DigestService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDailyDigest builds today's schedule and mails it.
func (s *DigestService) SendDailyDigest() {
	now := time.Now()

	rows, err := s.repo.ListLeads()
	if err != nil {
		log.Printf("Digest: failed to load leads: %v", err)
		return
	}
	leads := make([]crm.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, crm.DecodeLead(row))
	}

	events, err := s.repo.ListAppointments()
	if err != nil {
		log.Printf("Digest: failed to load appointments: %v", err)
		return
	}

	rich := crm.EnrichEvents(events, leads)
	today := crm.EventsByDay(rich)[crm.DayKey(now)]
	slots, skipped := crm.BuildDaySchedule(today, now)

	subject := "Your day ahead — " + now.Format("Mon Jan 2")
	body := digestBody(slots, skipped, crm.NewInquiries(leads))

	if err := s.notify.DailyDigest(subject, body); err != nil {
		log.Printf("Digest: send failed: %v", err)
		return
	}
	log.Println("Daily digest sent")
}

func digestBody(slots []crm.Slot, skipped int, inquiries []crm.AlertResult) string {
	var b strings.Builder

	booked := 0
	for _, slot := range slots {
		if slot.Kind != crm.SlotEvent {
			continue
		}
		booked++
		label := slot.Event.Event.Title
		if label == "" {
			label = slot.Event.Event.Service
		}
		if label == "" {
			label = "Appointment"
		}
		fmt.Fprintf(&b, "%s–%s  %s", slot.Start.Format("15:04"), slot.End.Format("15:04"), label)
		if slot.Event.Lead != nil && slot.Event.Lead.Name != "" {
			fmt.Fprintf(&b, " (%s)", slot.Event.Lead.Name)
		}
		b.WriteString("\n")
	}
	if booked == 0 {
		b.WriteString("No appointments today.\n")
	}
	if skipped > 0 {
		fmt.Fprintf(&b, "\n%d appointment(s) missing a start time were not scheduled.\n", skipped)
	}
	if len(inquiries) > 0 {
		fmt.Fprintf(&b, "\n%d new inquiry(ies) waiting for a first reply.\n", len(inquiries))
	}
	return b.String()
}
