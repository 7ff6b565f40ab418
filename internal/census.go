package internal

import (
	"sort"
	"time"
)

// Census is a daily count of active subscriptions, keyed by UTC midnight.
type Census struct {
	Counts map[time.Time]int
}

// CensusPoint is one day of the census, for ordered views.
type CensusPoint struct {
	Date  time.Time
	Count int
}

// Day truncates a time to UTC midnight, the census key granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CountActive builds the daily census: every subscription contributes +1
// to each day from its start date to its effective end date inclusive.
// Rows without a start or a resolvable effective end are skipped.
func CountActive(subs []Subscription) Census {
	counts := make(map[time.Time]int)
	for _, sub := range subs {
		if sub.Start.IsZero() || sub.EffectiveEnd.IsZero() {
			continue
		}
		end := Day(sub.EffectiveEnd)
		for day := Day(sub.Start); !day.After(end); day = day.AddDate(0, 0, 1) {
			counts[day]++
		}
	}
	return Census{Counts: counts}
}

// At returns the count for the given day, zero when the day is absent.
func (c Census) At(t time.Time) int {
	return c.Counts[Day(t)]
}

// Window returns the census days strictly between after and before, in
// date order.
func (c Census) Window(after, before time.Time) []CensusPoint {
	var points []CensusPoint
	for day, count := range c.Counts {
		if day.After(after) && day.Before(before) {
			points = append(points, CensusPoint{Date: day, Count: count})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// FullWindow is the census clipped to (2020-01-01, today+90d).
func (c Census) FullWindow(now time.Time) []CensusPoint {
	return c.Window(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), now.AddDate(0, 0, 90))
}

// ShortWindow is the census clipped to (today-30d, today+30d).
func (c Census) ShortWindow(now time.Time) []CensusPoint {
	return c.Window(now.AddDate(0, 0, -30), now.AddDate(0, 0, 30))
}
