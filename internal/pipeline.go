package internal

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// RunResult is everything one pipeline run produces.
type RunResult struct {
	Invoices      []Invoice
	Subscriptions []Subscription
	TimeTracking  []TimeEntry
	Tags          []string
	TagCompanies  map[string][]Company

	Census      Census
	FullSeries  []CensusPoint
	ShortSeries []CensusPoint
	TodayCount  int

	Classification Classification
	ExcludedIDs    []string
	Unresolved     []UnresolvedRef
}

// Pipeline runs the reconciliation end to end. One run at a time,
// sequential and blocking; upstream API failures abort the run.
type Pipeline struct {
	tl     CurrentAPI
	tl1    LegacyAPI
	cfg    *Config
	loader *Loader
	log    zerolog.Logger
	now    func() time.Time
}

func NewPipeline(tl CurrentAPI, tl1 LegacyAPI, cfg *Config, log zerolog.Logger) *Pipeline {
	return NewPipelineAt(tl, tl1, cfg, log, time.Now)
}

// NewPipelineAt injects the clock, for tests.
func NewPipelineAt(tl CurrentAPI, tl1 LegacyAPI, cfg *Config, log zerolog.Logger, now func() time.Time) *Pipeline {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &Pipeline{
		tl:     tl,
		tl1:    tl1,
		cfg:    cfg,
		loader: NewLoader(tl, tl1, now),
		log:    log,
		now:    now,
	}
}

// Reset drops all cached API results, forcing the next run to reload.
func (p *Pipeline) Reset() {
	p.loader.Reset()
}

func (p *Pipeline) Run(sess *Session) (*RunResult, error) {
	limit := sess.RowLimit

	p.log.Info().Msg("loading raw subscription data")
	rawSubs, err := p.loader.Subscriptions(limit)
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("loading raw invoice data")
	rawInvoices, err := p.loader.Invoices(limit)
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("loading raw timetracking data")
	rawTime, err := p.loader.TimeTracking(limit)
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("loading raw tag data")
	rawTags, err := p.loader.Tags()
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("processing raw subscription data")
	subscriptions := NormalizeSubscriptions(rawSubs)

	p.log.Info().Msg("loading subscription related invoice data")
	link, err := LinkSubscriptionInvoices(p.tl, p.tl1, rawSubs)
	if err != nil {
		return nil, err
	}
	for _, ref := range link.Unresolved {
		p.log.Warn().
			Str("kind", ref.Kind).
			Str("legacy_id", ref.LegacyID).
			Str("reason", ref.Reason).
			Msg("unresolved legacy reference")
	}

	p.log.Info().Msg("processing raw invoice data")
	invoices := NormalizeInvoices(rawInvoices, link.IDs, p.cfg.CustomerRules)

	p.log.Info().Msg("processing raw timetracking data")
	timeTracking := NormalizeTimeTracking(rawTime)

	p.log.Info().Msg("loading details of non subscription invoices")
	details, err := p.loader.InvoiceDetails(invoices)
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("classifying invoice details")
	classification := Classify(details, p.cfg.Phrases())
	MarkSubscriptionInvoices(invoices, classification.Subscription)

	excluded := sess.ExclusionSet(p.cfg, classification.NoCompany)
	invoices = DropExcluded(invoices, excluded)

	p.log.Info().Int("tags", len(sess.Tags)).Msg("resolving tag companies")
	tagCompanies, err := p.loader.TagCompanies(sess.Tags)
	if err != nil {
		return nil, err
	}

	p.log.Info().Msg("counting active subscriptions")
	census := CountActive(subscriptions)
	now := p.now()

	tags := make([]string, 0, len(rawTags))
	for _, t := range rawTags {
		tags = append(tags, t.Name)
	}

	excludedIDs := make([]string, 0, len(excluded))
	for id := range excluded {
		excludedIDs = append(excludedIDs, id)
	}
	sort.Strings(excludedIDs)

	p.log.Info().Msg("loading done")
	return &RunResult{
		Invoices:       invoices,
		Subscriptions:  subscriptions,
		TimeTracking:   timeTracking,
		Tags:           tags,
		TagCompanies:   tagCompanies,
		Census:         census,
		FullSeries:     census.FullWindow(now),
		ShortSeries:    census.ShortWindow(now),
		TodayCount:     census.At(now),
		Classification: classification,
		ExcludedIDs:    excludedIDs,
		Unresolved:     link.Unresolved,
	}, nil
}
