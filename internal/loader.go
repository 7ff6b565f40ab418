package internal

import (
	"time"
)

// Loader fetches raw collections from the two APIs. Results are memoized
// per (source, limit) for the lifetime of the loader, so a pipeline re-run
// in the same session does not repeat network calls. The cache is dropped
// on Reset and never shared across sessions.
type Loader struct {
	tl  CurrentAPI
	tl1 LegacyAPI
	now func() time.Time

	invoices      map[int][]RawInvoice
	subscriptions map[int][]RawSubscription
	timeTracking  map[int][]RawTimeEntry
	tags          []Tag
	details       map[string]InvoiceDetail
}

func NewLoader(tl CurrentAPI, tl1 LegacyAPI, now func() time.Time) *Loader {
	if now == nil {
		now = time.Now
	}
	l := &Loader{tl: tl, tl1: tl1, now: now}
	l.Reset()
	return l
}

// Reset drops all cached results. Call at session reset.
func (l *Loader) Reset() {
	l.invoices = make(map[int][]RawInvoice)
	l.subscriptions = make(map[int][]RawSubscription)
	l.timeTracking = make(map[int][]RawTimeEntry)
	l.tags = nil
	l.details = make(map[string]InvoiceDetail)
}

// Invoices returns up to limit raw invoices in source order. limit <= 0
// means all.
func (l *Loader) Invoices(limit int) ([]RawInvoice, error) {
	if cached, ok := l.invoices[limit]; ok {
		return cached, nil
	}
	rows, err := l.tl.Invoices().Take(limit)
	if err != nil {
		return nil, err
	}
	l.invoices[limit] = rows
	return rows, nil
}

// Subscriptions returns up to limit raw subscriptions in source order.
func (l *Loader) Subscriptions(limit int) ([]RawSubscription, error) {
	if cached, ok := l.subscriptions[limit]; ok {
		return cached, nil
	}
	rows, err := l.tl1.Subscriptions().Take(limit)
	if err != nil {
		return nil, err
	}
	l.subscriptions[limit] = rows
	return rows, nil
}

// TimeTracking returns up to limit invoiceable time entries started this
// year to date. The invoiceable filter runs before the limit, matching the
// other loads' "first N of the filtered stream" semantics.
func (l *Loader) TimeTracking(limit int) ([]RawTimeEntry, error) {
	if cached, ok := l.timeTracking[limit]; ok {
		return cached, nil
	}
	now := l.now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	all, err := l.tl.TimeTracking(from, now).All()
	if err != nil {
		return nil, err
	}
	var rows []RawTimeEntry
	for _, tt := range all {
		if !tt.Invoiceable {
			continue
		}
		rows = append(rows, tt)
		if limit > 0 && len(rows) == limit {
			break
		}
	}
	l.timeTracking[limit] = rows
	return rows, nil
}

// Tags returns all tags.
func (l *Loader) Tags() ([]Tag, error) {
	if l.tags != nil {
		return l.tags, nil
	}
	tags, err := l.tl.Tags().All()
	if err != nil {
		return nil, err
	}
	l.tags = tags
	return tags, nil
}

// InvoiceDetails fetches line-item detail for every invoice not already
// flagged as subscription-originated.
func (l *Loader) InvoiceDetails(invoices []Invoice) ([]InvoiceDetail, error) {
	var details []InvoiceDetail
	for _, inv := range invoices {
		if inv.FromSubscription {
			continue
		}
		if d, ok := l.details[inv.ID]; ok {
			details = append(details, d)
			continue
		}
		d, err := l.tl.InvoiceInfo(inv.ID)
		if err != nil {
			return nil, err
		}
		l.details[inv.ID] = d
		details = append(details, d)
	}
	return details, nil
}

// TagCompanies resolves each selected tag to its set of companies.
func (l *Loader) TagCompanies(tags []string) (map[string][]Company, error) {
	out := make(map[string][]Company, len(tags))
	for _, tag := range tags {
		companies, err := l.tl.CompaniesByTag(tag)
		if err != nil {
			return nil, err
		}
		out[tag] = companies
	}
	return out, nil
}
