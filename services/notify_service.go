package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

// InquiryNotification is the structured payload of one booking inquiry.
type InquiryNotification struct {
	Name      string
	Email     string
	Phone     string
	Service   string
	Date      string
	Location  string
	PartySize *int
	AddOns    []string
	Notes     string
}

// NotifyService delivers operator notifications. Email over SMTP is the
// primary channel; an SMS ping goes out as well when Twilio is configured.
type NotifyService struct {
	dialer *gomail.Dialer
	sms    *twilio.RestClient
}

func NewNotifyService() *NotifyService {
	s := &NotifyService{}

	host := os.Getenv("SMTP_HOST")
	if host != "" {
		port := 587
		if raw := os.Getenv("SMTP_PORT"); raw != "" {
			if p, err := strconv.Atoi(raw); err == nil {
				port = p
			}
		}
		s.dialer = gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	}

	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		s.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}

	return s
}

func inquiryBody(n InquiryNotification) string {
	var b strings.Builder
	line := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	line("Name", n.Name)
	line("Email", n.Email)
	line("Phone", n.Phone)
	line("Service", n.Service)
	line("Date", n.Date)
	line("Location", n.Location)
	if n.PartySize != nil && *n.PartySize > 0 {
		fmt.Fprintf(&b, "Party size: %d\n", *n.PartySize)
	}
	line("Add-ons", strings.Join(n.AddOns, ", "))
	if strings.TrimSpace(n.Notes) != "" {
		fmt.Fprintf(&b, "\n%s\n", n.Notes)
	}
	return b.String()
}

// BookingInquiry emails the operator about a new inquiry and returns a
// delivery id. SMS failure is logged, never surfaced: the email is the
// record of delivery.
func (s *NotifyService) BookingInquiry(n InquiryNotification) (string, error) {
	to := os.Getenv("OPERATOR_EMAIL")
	if s.dialer == nil || to == "" {
		return "", fmt.Errorf("smtp not configured")
	}

	subject := "New booking inquiry"
	if n.Name != "" {
		subject += " from " + n.Name
	}

	deliveryID := uuid.NewString()
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Delivery-ID", deliveryID)
	m.SetBody("text/plain", inquiryBody(n))

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("send inquiry mail: %w", err)
	}

	s.sendSMS("New inquiry" + smsSuffix(n))
	return deliveryID, nil
}

func smsSuffix(n InquiryNotification) string {
	parts := []string{}
	if n.Name != "" {
		parts = append(parts, n.Name)
	}
	if n.Service != "" {
		parts = append(parts, n.Service)
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, ", ")
}

// DailyDigest emails the operator the day's schedule summary.
func (s *NotifyService) DailyDigest(subject, body string) error {
	to := os.Getenv("OPERATOR_EMAIL")
	if s.dialer == nil || to == "" {
		return fmt.Errorf("smtp not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send digest mail: %w", err)
	}
	return nil
}

func (s *NotifyService) sendSMS(body string) {
	to := os.Getenv("OPERATOR_PHONE")
	if s.sms == nil || to == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	resp, err := s.sms.Api.CreateMessage(params)
	if err != nil {
		log.Printf("SMS notification failed: %v", err)
		return
	}
	if resp.Sid != nil {
		log.Printf("SMS notification sent, SID: %s", *resp.Sid)
	}
}
