package internal

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CustomerRule excludes invoices for a specific customer, optionally only
// when the total falls strictly between two bounds.
type CustomerRule struct {
	Customer string   `yaml:"customer"`
	Above    *float64 `yaml:"above,omitempty"` // exclusive lower bound on the total
	Below    *float64 `yaml:"below,omitempty"` // exclusive upper bound on the total
}

// Matches reports whether the invoice falls under this rule.
func (r CustomerRule) Matches(inv Invoice) bool {
	if inv.Customer != r.Customer {
		return false
	}
	if r.Above != nil && !inv.Total.GreaterThan(decimal.NewFromFloat(*r.Above)) {
		return false
	}
	if r.Below != nil && !inv.Total.LessThan(decimal.NewFromFloat(*r.Below)) {
		return false
	}
	return true
}

// DefaultCustomerRules are known data-quality workarounds in the source
// administration: a customer whose mid-range invoices are duplicates, and
// the business's own internal invoices.
var DefaultCustomerRules = []CustomerRule{
	{Customer: "CollactiveBMK Credit Management", Above: f64(2200), Below: f64(5500)},
	{Customer: "Recht Direct"},
}

// DefaultExcludedInvoiceIDs seed the exclusion set: known bad records that
// must never reach the report.
var DefaultExcludedInvoiceIDs = []string{
	"3ae003b8-cce6-0389-ab60-db361ac1e046",
	"777a0bd9-125b-0853-b06d-549dbbe286c5",
	"57b82535-7a74-007a-8566-6c343bb2d30e",
	"07b2eaf9-2121-010d-9a6a-3c1f01e836a0",
	"4b0694a3-11ea-073c-8467-accd7eace214",
	"21869bdc-b1eb-0442-a263-b128c2ddc9a1",
}

func f64(v float64) *float64 { return &v }

type Config struct {
	// NoCompanyPhrases mark line items with no customer attribution.
	NoCompanyPhrases []string `yaml:"no_company_phrases,omitempty"`

	// SubscriptionPhrases identify subscription billing lines.
	SubscriptionPhrases []string `yaml:"subscription_phrases,omitempty"`

	// CustomerRules exclude invoices per customer, optionally bounded on
	// the total.
	CustomerRules []CustomerRule `yaml:"customer_rules,omitempty"`

	// ExcludeInvoiceIDs seed the per-run exclusion set.
	ExcludeInvoiceIDs []string `yaml:"exclude_invoice_ids,omitempty"`

	// UseDefaults controls whether the built-in phrase lists, customer
	// rules and exclusion IDs are merged in. Defaults to true.
	UseDefaults *bool `yaml:"use_defaults,omitempty"`
}

// NewDefaultConfig creates a config with only the built-in defaults.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge defaults unless disabled; defaults come first so user entries
	// extend rather than replace them.
	useDefaults := cfg.UseDefaults == nil || *cfg.UseDefaults
	if useDefaults {
		cfg.applyDefaults()
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.NoCompanyPhrases = append(append([]string{}, DefaultNoCompanyPhrases...), c.NoCompanyPhrases...)
	c.SubscriptionPhrases = append(append([]string{}, DefaultSubscriptionPhrases...), c.SubscriptionPhrases...)
	c.CustomerRules = append(append([]CustomerRule{}, DefaultCustomerRules...), c.CustomerRules...)
	c.ExcludeInvoiceIDs = append(append([]string{}, DefaultExcludedInvoiceIDs...), c.ExcludeInvoiceIDs...)
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Phrases returns the classifier phrase lists from this config.
func (c *Config) Phrases() PhraseLists {
	if c == nil {
		return DefaultPhraseLists()
	}
	return PhraseLists{
		NoCompany:    c.NoCompanyPhrases,
		Subscription: c.SubscriptionPhrases,
	}
}
