package internal

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWeeklyHours(t *testing.T) {
	entries := []TimeEntry{
		{Week: 2, Minutes: 60},
		{Week: 2, Minutes: 30},
		{Week: 5, Minutes: 90},
		{Week: 0, Minutes: 15}, // unparsed start date
	}

	totals := WeeklyHours(entries)

	if len(totals) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(totals))
	}
	if totals[0].Week != 0 || totals[0].Minutes != 15 {
		t.Errorf("week 0 bucket should be kept: %+v", totals[0])
	}
	if totals[1].Week != 2 || totals[1].Minutes != 90 {
		t.Errorf("expected 90 minutes in week 2, got %+v", totals[1])
	}
	if totals[2].Week != 5 || totals[2].Minutes != 90 {
		t.Errorf("expected 90 minutes in week 5, got %+v", totals[2])
	}
}

func TestPrintInvoiceTable(t *testing.T) {
	invoices := []Invoice{
		{
			ID:          "inv-1",
			Customer:    "Bakker BV",
			InvoiceDate: date("2024-01-15"),
			Total:       decimal.RequireFromString("100.00"),
			Status:      "paid",
		},
		{
			ID:               "inv-2",
			Customer:         "Visser",
			Total:            decimal.RequireFromString("50.00"),
			Status:           "draft",
			FromSubscription: true,
		},
	}

	var buf strings.Builder
	PrintInvoiceTable(&buf, invoices, EUR())
	out := buf.String()

	for _, want := range []string{"inv-1", "Bakker BV", "2024-01-15", "paid", "inv-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// missing paid date renders as a dash, not a zero time
	if strings.Contains(out, "0001-01-01") {
		t.Errorf("zero dates must not leak into the output")
	}
}

func TestPrintCensusEmpty(t *testing.T) {
	var buf strings.Builder
	PrintCensus(&buf, "Active subscriptions", nil)

	if !strings.Contains(buf.String(), "Active subscriptions") {
		t.Errorf("title missing from empty census output")
	}
}

func TestPrintUnresolved(t *testing.T) {
	var buf strings.Builder

	PrintUnresolved(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("no output expected without unresolved refs")
	}

	PrintUnresolved(&buf, []UnresolvedRef{{Kind: "invoice", LegacyID: "103", Reason: "no migration match"}})
	out := buf.String()
	if !strings.Contains(out, "103") || !strings.Contains(out, "no migration match") {
		t.Errorf("unresolved table missing fields: %s", out)
	}
}

func TestCurrencyFormat(t *testing.T) {
	cur := EUR()

	tests := []struct {
		amount   string
		expected string
	}{
		{"1234.56", "€ 1.234,56"}, // Dutch grouping and decimal comma
		{"0", "€ 0,00"},
		{"99.9", "€ 99,90"},
	}

	for _, tt := range tests {
		got := cur.Format(decimal.RequireFromString(tt.amount))
		if got != tt.expected {
			t.Errorf("Format(%s): expected %q, got %q", tt.amount, tt.expected, got)
		}
	}
}
