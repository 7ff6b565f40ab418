package internal

import (
	"strings"
)

// DefaultNoCompanyPhrases marks line items that belong to no customer
// grouping (internal adjustment or correction entries).
var DefaultNoCompanyPhrases = []string{
	"procit",
}

// DefaultSubscriptionPhrases are the product names that identify an
// invoice line as subscription billing.
var DefaultSubscriptionPhrases = []string{
	"echt ontzorgd",
	"abonnement",
	"digitaal ontzorgd",
	"volledig digitaal",
	"écht ontzorgd +",
}

// PhraseLists holds the classification phrase lists. Matching is
// case-insensitive substring.
type PhraseLists struct {
	NoCompany    []string
	Subscription []string
}

func DefaultPhraseLists() PhraseLists {
	return PhraseLists{
		NoCompany:    DefaultNoCompanyPhrases,
		Subscription: DefaultSubscriptionPhrases,
	}
}

// Bucket is the classification outcome for a whole invoice.
type Bucket string

const (
	BucketSubscription Bucket = "subscription"
	BucketOther        Bucket = "other"
	BucketNoCompany    Bucket = "no-company"
)

// Classification groups invoice details by bucket. Buckets are disjoint:
// each invoice lands in exactly one.
type Classification struct {
	Subscription []InvoiceDetail
	Other        []InvoiceDetail
	NoCompany    []InvoiceDetail
}

// IDs returns the invoice IDs of a detail list.
func IDs(details []InvoiceDetail) []string {
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
	}
	return ids
}

// Classify buckets each invoice by scanning all of its line-item
// descriptions. A single no-company match anywhere sends the whole invoice
// to the no-company bucket; otherwise a single subscription match sends it
// to subscription; otherwise it is other. Precedence:
// no-company > subscription > other.
func Classify(details []InvoiceDetail, phrases PhraseLists) Classification {
	var out Classification
	for _, detail := range details {
		switch classifyOne(detail, phrases) {
		case BucketNoCompany:
			out.NoCompany = append(out.NoCompany, detail)
		case BucketSubscription:
			out.Subscription = append(out.Subscription, detail)
		default:
			out.Other = append(out.Other, detail)
		}
	}
	return out
}

func classifyOne(detail InvoiceDetail, phrases PhraseLists) Bucket {
	bucket := BucketOther
	for _, group := range detail.Groups {
		for _, item := range group.Items {
			desc := strings.ToLower(item.Description)
			if matchesAny(desc, phrases.NoCompany) {
				return BucketNoCompany
			}
			if matchesAny(desc, phrases.Subscription) {
				bucket = BucketSubscription
			}
		}
	}
	return bucket
}

func matchesAny(desc string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(desc, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
