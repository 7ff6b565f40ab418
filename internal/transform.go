package internal

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// legacyDateLayout is the dd/mm/yyyy format the legacy API pre-formats its
// subscription date columns with.
const legacyDateLayout = "02/01/2006"

// parseLenient parses a date in whatever format the API produced,
// coercing failures (and empty values) to the zero time.
func parseLenient(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseLegacyDate parses a dd/mm/yyyy column, coercing failures to zero.
func parseLegacyDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(legacyDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NormalizeInvoices turns raw invoices into the invoice table. linked is
// the subscription-originated ID set from the linker; rules are the
// customer exclusion rules. Rows matching a rule, or whose raw total is
// the literal string "0.00", are dropped.
func NormalizeInvoices(raw []RawInvoice, linked map[string]bool, rules []CustomerRule) []Invoice {
	var out []Invoice
	for _, r := range raw {
		total, err := decimal.NewFromString(r.TotalRaw)
		if err != nil {
			total = decimal.Zero
		}
		inv := Invoice{
			ID:               r.ID,
			CustomerID:       r.CustomerID,
			Customer:         r.CustomerName,
			InvoiceDate:      parseLenient(r.InvoiceDate),
			PaidDate:         parseLenient(r.PaidAt),
			Total:            total,
			TotalRaw:         r.TotalRaw,
			Status:           r.Status,
			FromSubscription: linked[r.ID],
		}
		// The source formats a zero total as "0.00"; compare the raw
		// string, not the parsed value.
		if inv.TotalRaw == "0.00" {
			continue
		}
		if matchesAnyRule(inv, rules) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func matchesAnyRule(inv Invoice, rules []CustomerRule) bool {
	for _, rule := range rules {
		if rule.Matches(inv) {
			return true
		}
	}
	return false
}

// MarkSubscriptionInvoices flags the invoices whose IDs appear in the
// classifier's subscription bucket.
func MarkSubscriptionInvoices(invoices []Invoice, subscriptionDetails []InvoiceDetail) {
	ids := make(map[string]bool, len(subscriptionDetails))
	for _, d := range subscriptionDetails {
		ids[d.ID] = true
	}
	for i := range invoices {
		if ids[invoices[i].ID] {
			invoices[i].FromSubscription = true
		}
	}
}

// DropExcluded removes invoices whose ID is in the exclusion set.
func DropExcluded(invoices []Invoice, excluded map[string]bool) []Invoice {
	var out []Invoice
	for _, inv := range invoices {
		if excluded[inv.ID] {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// NormalizeSubscriptions turns raw subscriptions into the subscription
// table. The effective end date is the end date when present, else the
// next renewal date.
func NormalizeSubscriptions(raw []RawSubscription) []Subscription {
	out := make([]Subscription, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.PriceExclVAT)
		if err != nil {
			price = decimal.Zero
		}
		sub := Subscription{
			ID:           r.ID,
			Active:       r.Active,
			Title:        r.Title,
			Repeat:       r.Repeat,
			Client:       r.ClientName,
			Department:   r.DepartmentName,
			Start:        parseLegacyDate(r.DateStart),
			End:          parseLegacyDate(r.DateEnd),
			NextRenewal:  parseLegacyDate(r.NextRenewal),
			PriceExclVAT: price,
			Counterparty: r.Counterparty,
		}
		sub.EffectiveEnd = sub.End
		if sub.EffectiveEnd.IsZero() {
			sub.EffectiveEnd = sub.NextRenewal
		}
		out = append(out, sub)
	}
	return out
}

// NormalizeTimeTracking turns raw time entries into the time table.
// Duration converts from seconds to minutes; year, month and ISO week
// derive from the start date and stay zero when it fails to parse.
func NormalizeTimeTracking(raw []RawTimeEntry) []TimeEntry {
	out := make([]TimeEntry, 0, len(raw))
	for _, r := range raw {
		entry := TimeEntry{
			StartedOn:   parseLenient(r.StartedOn),
			Minutes:     r.Duration / 60,
			Description: r.Description,
			User:        r.User,
		}
		if !entry.StartedOn.IsZero() {
			entry.Year = entry.StartedOn.Year()
			entry.Month = int(entry.StartedOn.Month())
			_, entry.Week = entry.StartedOn.ISOWeek()
		}
		out = append(out, entry)
	}
	return out
}
