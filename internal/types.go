package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawInvoice is an invoice record as the current API returns it, flattened
// but not yet parsed. Dates and amounts stay textual until normalization.
type RawInvoice struct {
	ID           string
	CustomerID   string
	CustomerName string
	InvoiceDate  string
	PaidAt       string
	TotalRaw     string // tax-exclusive amount, exactly as formatted by the API
	Status       string
}

// RawSubscription is a subscription record from the legacy API. The legacy
// API pre-formats its date columns as dd/mm/yyyy strings.
type RawSubscription struct {
	ID             string
	Active         bool
	Title          string
	Repeat         string
	ClientName     string
	DepartmentName string
	DateStart      string
	DateEnd        string
	NextRenewal    string
	PriceExclVAT   string
	Counterparty   string
}

// RawTimeEntry is a time-tracking record from the current API.
type RawTimeEntry struct {
	StartedOn   string
	Duration    float64 // seconds
	Description string
	User        string
	Invoiceable bool
}

// Invoice is a normalized invoice row. A zero time means the source value
// was missing or unparseable.
type Invoice struct {
	ID               string
	CustomerID       string
	Customer         string
	InvoiceDate      time.Time
	PaidDate         time.Time
	Total            decimal.Decimal // tax-exclusive
	TotalRaw         string
	Status           string
	FromSubscription bool
}

// Subscription is a normalized subscription row. EffectiveEnd is the end
// date when present, otherwise the next renewal date; zero when neither
// could be parsed.
type Subscription struct {
	ID           string
	Active       bool
	Title        string
	Repeat       string
	Client       string
	Department   string
	Start        time.Time
	End          time.Time
	NextRenewal  time.Time
	EffectiveEnd time.Time
	PriceExclVAT decimal.Decimal
	Counterparty string
}

// TimeEntry is a normalized time-tracking row. Year/Month/Week are zero
// when the start date did not parse; consumers must tolerate that.
type TimeEntry struct {
	StartedOn   time.Time
	Minutes     float64
	Description string
	User        string
	Year        int
	Month       int
	Week        int // ISO week
}

// InvoiceDetail carries the line items of a single invoice. Only used
// transiently by the classifier.
type InvoiceDetail struct {
	ID     string
	Groups []LineGroup
}

type LineGroup struct {
	Items []LineItem
}

type LineItem struct {
	Description string
}

// Tag is a tag known to the current API.
type Tag struct {
	Name string
}

// Company is a company record, used for tag lookups.
type Company struct {
	ID   string
	Name string
}

// UnresolvedRef records a legacy ID that could not be mapped to a current
// API ID during linking.
type UnresolvedRef struct {
	Kind     string // "invoice"
	LegacyID string
	Reason   string
}
