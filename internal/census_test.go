package internal

import (
	"testing"
	"time"
)

func TestCountActiveInclusiveRange(t *testing.T) {
	subs := []Subscription{{
		Start:        date("2024-01-01"),
		EffectiveEnd: date("2024-01-05"),
	}}

	census := CountActive(subs)

	for d := date("2024-01-01"); !d.After(date("2024-01-05")); d = d.AddDate(0, 0, 1) {
		if census.At(d) != 1 {
			t.Errorf("expected count 1 on %s, got %d", d.Format("2006-01-02"), census.At(d))
		}
	}
	if census.At(date("2023-12-31")) != 0 {
		t.Errorf("day before start should be unaffected")
	}
	if census.At(date("2024-01-06")) != 0 {
		t.Errorf("day after end should be unaffected")
	}
	if len(census.Counts) != 5 {
		t.Errorf("expected 5 counted days, got %d", len(census.Counts))
	}
}

func TestCountActiveRenewalFallbackScenario(t *testing.T) {
	// start 2024-01-01, no end date, next renewal 2024-03-01:
	// +1 for every day from Jan 1 through Mar 1 inclusive (61 days, leap year).
	subs := NormalizeSubscriptions([]RawSubscription{{
		DateStart:   "01/01/2024",
		NextRenewal: "01/03/2024",
	}})

	census := CountActive(subs)

	if len(census.Counts) != 61 {
		t.Errorf("expected 61 counted days, got %d", len(census.Counts))
	}
	if census.At(date("2024-03-01")) != 1 {
		t.Errorf("renewal day itself should count")
	}
	if census.At(date("2024-03-02")) != 0 {
		t.Errorf("day after renewal should not count")
	}
}

func TestCountActiveOverlap(t *testing.T) {
	subs := []Subscription{
		{Start: date("2024-01-01"), EffectiveEnd: date("2024-01-10")},
		{Start: date("2024-01-05"), EffectiveEnd: date("2024-01-15")},
	}

	census := CountActive(subs)

	if census.At(date("2024-01-03")) != 1 {
		t.Errorf("expected 1 before overlap")
	}
	if census.At(date("2024-01-07")) != 2 {
		t.Errorf("expected 2 inside overlap")
	}
	if census.At(date("2024-01-12")) != 1 {
		t.Errorf("expected 1 after overlap")
	}
}

func TestCountActiveSkipsUnresolvableRows(t *testing.T) {
	subs := []Subscription{
		{Start: date("2024-01-01")},               // no effective end
		{EffectiveEnd: date("2024-01-05")},        // no start
		{Start: time.Time{}, EffectiveEnd: time.Time{}}, // neither
	}

	census := CountActive(subs)
	if len(census.Counts) != 0 {
		t.Errorf("unresolvable rows must not contribute, got %d days", len(census.Counts))
	}
}

func TestCensusAtDefaultsToZero(t *testing.T) {
	census := CountActive(nil)
	if got := census.At(time.Now()); got != 0 {
		t.Errorf("missing day should report zero, got %d", got)
	}
}

func TestCensusWindows(t *testing.T) {
	now := date("2024-06-15")
	subs := []Subscription{
		{Start: date("2019-01-01"), EffectiveEnd: date("2024-12-31")},
	}
	census := CountActive(subs)

	full := census.FullWindow(now)
	if len(full) == 0 {
		t.Fatalf("expected a full window")
	}
	if !full[0].Date.After(date("2020-01-01")) {
		t.Errorf("full window must start after 2020-01-01, got %v", full[0].Date)
	}
	last := full[len(full)-1].Date
	if last.After(now.AddDate(0, 0, 90)) {
		t.Errorf("full window must end within today+90d, got %v", last)
	}

	short := census.ShortWindow(now)
	if len(short) != 59 {
		// strictly between -30d and +30d
		t.Errorf("expected 59 days in short window, got %d", len(short))
	}
	for i := 1; i < len(short); i++ {
		if !short[i].Date.After(short[i-1].Date) {
			t.Errorf("short window is not date ordered")
		}
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC)
	if !Day(ts).Equal(date("2024-06-15")) {
		t.Errorf("Day should truncate to midnight, got %v", Day(ts))
	}
}
