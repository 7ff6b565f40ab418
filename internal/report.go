package internal

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// PrintInvoiceTable renders the invoice table with a summed footer.
func PrintInvoiceTable(w io.Writer, invoices []Invoice, cur Currency) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Customer", "Invoice Date", "Paid", "Total", "Status", "Subscription"})

	total := decimalSum(invoices)
	for _, inv := range invoices {
		sub := ""
		if inv.FromSubscription {
			sub = text.FgGreen.Sprint("yes")
		}
		t.AppendRow(table.Row{
			inv.ID,
			inv.Customer,
			formatDate(inv.InvoiceDate),
			formatDate(inv.PaidDate),
			cur.Format(inv.Total),
			inv.Status,
			sub,
		})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", text.Bold.Sprint(cur.Format(total)), "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight}})
	t.Render()
}

func decimalSum(invoices []Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		sum = sum.Add(inv.Total)
	}
	return sum
}

// PrintSubscriptionTable renders the subscription table.
func PrintSubscriptionTable(w io.Writer, subs []Subscription, cur Currency) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Active", "Title", "Repeat", "Client", "Department", "Start", "End", "Effective End", "Price excl. VAT"})
	for _, sub := range subs {
		active := text.FgRed.Sprint("no")
		if sub.Active {
			active = text.FgGreen.Sprint("yes")
		}
		t.AppendRow(table.Row{
			active,
			sub.Title,
			sub.Repeat,
			sub.Client,
			sub.Department,
			formatDate(sub.Start),
			formatDate(sub.End),
			formatDate(sub.EffectiveEnd),
			cur.Format(sub.PriceExclVAT),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 9, Align: text.AlignRight}})
	t.Render()
}

// PrintTimeTable renders the time-tracking table.
func PrintTimeTable(w io.Writer, entries []TimeEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Started", "Minutes", "Description", "User", "Week"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			formatDate(e.StartedOn),
			fmt.Sprintf("%.1f", e.Minutes),
			e.Description,
			e.User,
			e.Week,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// WeekTotal is the summed minutes of one ISO week.
type WeekTotal struct {
	Week    int
	Minutes float64
}

// WeeklyHours rolls up time entries into per-ISO-week minute totals,
// sorted by week. Entries with an unparsed start date (week 0) are kept
// in their own bucket rather than dropped.
func WeeklyHours(entries []TimeEntry) []WeekTotal {
	byWeek := make(map[int]float64)
	for _, e := range entries {
		byWeek[e.Week] += e.Minutes
	}
	out := make([]WeekTotal, 0, len(byWeek))
	for week, minutes := range byWeek {
		out = append(out, WeekTotal{Week: week, Minutes: minutes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// PrintWeeklyHours renders the per-week project minutes rollup.
func PrintWeeklyHours(w io.Writer, entries []TimeEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Week", "Minutes"})
	for _, wt := range WeeklyHours(entries) {
		t.AppendRow(table.Row{wt.Week, fmt.Sprintf("%.1f", wt.Minutes)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// PrintCensus renders a census window as a table with a simple bar column.
func PrintCensus(w io.Writer, title string, points []CensusPoint) {
	fmt.Fprintf(w, "%s\n", title)
	t := newTable(w)
	t.AppendHeader(table.Row{"Date", "Active", ""})
	maxCount := 0
	for _, p := range points {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}
	for _, p := range points {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("█", p.Count*40/maxCount)
		}
		t.AppendRow(table.Row{p.Date.Format(dateLayout), p.Count, bar})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// PrintTagCompanies renders the referral-tag company lookup.
func PrintTagCompanies(w io.Writer, tagCompanies map[string][]Company) {
	tags := make([]string, 0, len(tagCompanies))
	for tag := range tagCompanies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	t := newTable(w)
	t.AppendHeader(table.Row{"Tag", "Company ID", "Company"})
	for _, tag := range tags {
		for _, company := range tagCompanies[tag] {
			t.AppendRow(table.Row{tag, company.ID, company.Name})
		}
	}
	t.Render()
}

// PrintUnresolved renders the linker's unresolved legacy references.
func PrintUnresolved(w io.Writer, refs []UnresolvedRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(w, "%d unresolved legacy references:\n", len(refs))
	t := newTable(w)
	t.AppendHeader(table.Row{"Kind", "Legacy ID", "Reason"})
	for _, ref := range refs {
		t.AppendRow(table.Row{ref.Kind, ref.LegacyID, ref.Reason})
	}
	t.Render()
}
