package internal

// Session carries the user's choices for a pipeline run. State is
// ephemeral: it lives as long as the process and is rebuilt per session.
type Session struct {
	// RowLimit caps how many records are loaded per collection.
	// A value <= 0 means unbounded.
	RowLimit int

	// Tags are the referral tags to resolve to companies.
	Tags []string

	// ExcludedInvoiceIDs are the invoice IDs the user added on top of the
	// configured and computed exclusions.
	ExcludedInvoiceIDs []string
}

// ExclusionSet re-derives the full exclusion set for a run: configured
// seed IDs, the user's additions, and the no-company invoices the
// classifier found. Re-deriving every run keeps the three sources in
// sync with fresh classification results.
func (s *Session) ExclusionSet(cfg *Config, noCompany []InvoiceDetail) map[string]bool {
	set := make(map[string]bool)
	if cfg != nil {
		for _, id := range cfg.ExcludeInvoiceIDs {
			set[id] = true
		}
	}
	for _, id := range s.ExcludedInvoiceIDs {
		set[id] = true
	}
	for _, d := range noCompany {
		set[d.ID] = true
	}
	return set
}
