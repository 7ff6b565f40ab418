package internal

import (
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func pageOf[T any](items []T, page int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeCurrentAPI struct {
	invoices    []RawInvoice
	timeEntries []RawTimeEntry
	tags        []Tag
	companies   map[string][]Company
	details     map[string]InvoiceDetail
	migrations  map[string]string // legacy ID -> current ID

	invoiceCalls int
	timeCalls    int
	tagCalls     int
	infoCalls    int
	migrateCalls int
	timeFrom     time.Time
	timeTo       time.Time
}

func (f *fakeCurrentAPI) Invoices() *Cursor[RawInvoice] {
	return NewCursor(func(page int) ([]RawInvoice, error) {
		f.invoiceCalls++
		return pageOf(f.invoices, page), nil
	})
}

func (f *fakeCurrentAPI) TimeTracking(from, to time.Time) *Cursor[RawTimeEntry] {
	f.timeFrom, f.timeTo = from, to
	return NewCursor(func(page int) ([]RawTimeEntry, error) {
		f.timeCalls++
		return pageOf(f.timeEntries, page), nil
	})
}

func (f *fakeCurrentAPI) Tags() *Cursor[Tag] {
	return NewCursor(func(page int) ([]Tag, error) {
		f.tagCalls++
		return pageOf(f.tags, page), nil
	})
}

func (f *fakeCurrentAPI) CompaniesByTag(tag string) ([]Company, error) {
	return f.companies[tag], nil
}

func (f *fakeCurrentAPI) InvoiceInfo(id string) (InvoiceDetail, error) {
	f.infoCalls++
	return f.details[id], nil
}

func (f *fakeCurrentAPI) MigrateID(kind, legacyID string) (string, bool, error) {
	f.migrateCalls++
	id, ok := f.migrations[legacyID]
	return id, ok, nil
}

type fakeLegacyAPI struct {
	subs          []RawSubscription
	invoicesBySub map[string][]string

	subCalls int
}

func (f *fakeLegacyAPI) Subscriptions() *Cursor[RawSubscription] {
	return NewCursor(func(page int) ([]RawSubscription, error) {
		f.subCalls++
		return pageOf(f.subs, page), nil
	})
}

func (f *fakeLegacyAPI) InvoicesBySubscription(subscriptionID string) ([]string, error) {
	return f.invoicesBySub[subscriptionID], nil
}
