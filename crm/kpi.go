package crm

import (
	"strings"

	"glowbook-backend/models"
)

// KPISummary holds the dashboard strip numbers for one timeframe. Revenue
// stays a plain float sum here; whole-dollar rounding happens at
// presentation only.
type KPISummary struct {
	Bookings       int     `json:"bookings"`
	Trials         int     `json:"trials"`
	ServiceRevenue float64 `json:"serviceRevenue"`
	GuideRevenue   float64 `json:"guideRevenue"`
}

// FilterEvents keeps events whose resolved start falls inside the half-open
// timeframe. An event starting exactly at End is out.
func FilterEvents(events []models.Appointment, tf Timeframe) []models.Appointment {
	var out []models.Appointment
	for _, event := range events {
		if event.Start == nil || !tf.Contains(*event.Start) {
			continue
		}
		out = append(out, event)
	}
	return out
}

// FilterSales keeps sales created inside the timeframe.
func FilterSales(sales []models.Sale, tf Timeframe) []models.Sale {
	var out []models.Sale
	for _, sale := range sales {
		if !tf.Contains(sale.CreatedAt) {
			continue
		}
		out = append(out, sale)
	}
	return out
}

// FilterLeads keeps leads whose service date (or, lacking one, creation
// time) falls inside the timeframe.
func FilterLeads(leads []Lead, tf Timeframe) []Lead {
	var out []Lead
	for _, lead := range leads {
		when := lead.CreatedAt
		if lead.DateOfService != nil {
			when = *lead.DateOfService
		}
		if !tf.Contains(when) {
			continue
		}
		out = append(out, lead)
	}
	return out
}

// Aggregate computes the KPI strip for one timeframe window: booked or
// completed appointment count, trial count (service name contains "trial"),
// appointment revenue, and guide sale revenue.
func Aggregate(events []models.Appointment, sales []models.Sale, tf Timeframe) KPISummary {
	var summary KPISummary
	for _, event := range FilterEvents(events, tf) {
		if event.Status == "booked" || event.Status == "completed" {
			summary.Bookings++
		}
		if strings.Contains(strings.ToLower(event.Service), "trial") {
			summary.Trials++
		}
		if event.Price != nil {
			summary.ServiceRevenue += *event.Price
		}
	}
	for _, sale := range FilterSales(sales, tf) {
		if sale.Type == "guide" {
			summary.GuideRevenue += sale.Amount
		}
	}
	return summary
}

// BucketSeries folds a list of amounts into bucketCount positional chunks
// for a sparkline: chunk size is ceil(len/bucketCount) and each bucket is
// that chunk's sum. This buckets by list position, not by calendar time —
// a deliberate simplification kept from the dashboard's behavior.
func BucketSeries(amounts []float64, bucketCount int) []float64 {
	if bucketCount <= 0 {
		bucketCount = 12
	}
	out := make([]float64, bucketCount)
	if len(amounts) == 0 {
		return out
	}
	size := (len(amounts) + bucketCount - 1) / bucketCount
	for i := 0; i < bucketCount; i++ {
		lo := i * size
		hi := lo + size
		if lo > len(amounts) {
			lo = len(amounts)
		}
		if hi > len(amounts) {
			hi = len(amounts)
		}
		for _, v := range amounts[lo:hi] {
			out[i] += v
		}
	}
	return out
}
