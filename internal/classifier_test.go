package internal

import (
	"testing"
)

func detailWithItems(id string, descriptions ...string) InvoiceDetail {
	group := LineGroup{}
	for _, d := range descriptions {
		group.Items = append(group.Items, LineItem{Description: d})
	}
	return InvoiceDetail{ID: id, Groups: []LineGroup{group}}
}

func TestClassify(t *testing.T) {
	phrases := DefaultPhraseLists()

	tests := []struct {
		name     string
		detail   InvoiceDetail
		expected Bucket
	}{
		{
			name:     "subscription phrase",
			detail:   detailWithItems("a", "Abonnement december"),
			expected: BucketSubscription,
		},
		{
			name:     "no company phrase",
			detail:   detailWithItems("b", "Doorbelasting Procit"),
			expected: BucketNoCompany,
		},
		{
			name:     "no phrase at all",
			detail:   detailWithItems("c", "Losse werkzaamheden november"),
			expected: BucketOther,
		},
		{
			name:     "case insensitive match",
			detail:   detailWithItems("d", "ECHT ONTZORGD pakket"),
			expected: BucketSubscription,
		},
		{
			name:     "no company wins over subscription",
			detail:   detailWithItems("e", "Abonnement december", "correctie procit"),
			expected: BucketNoCompany,
		},
		{
			name:     "subscription wins over other items",
			detail:   detailWithItems("f", "Losse werkzaamheden", "Volledig digitaal pakket"),
			expected: BucketSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify([]InvoiceDetail{tt.detail}, phrases)
			buckets := map[Bucket][]InvoiceDetail{
				BucketSubscription: result.Subscription,
				BucketOther:        result.Other,
				BucketNoCompany:    result.NoCompany,
			}
			for bucket, details := range buckets {
				if bucket == tt.expected {
					if len(details) != 1 || details[0].ID != tt.detail.ID {
						t.Errorf("expected invoice in %s bucket, got %v", bucket, details)
					}
				} else if len(details) != 0 {
					t.Errorf("invoice unexpectedly in %s bucket", bucket)
				}
			}
		})
	}
}

func TestClassifyBucketsAreDisjoint(t *testing.T) {
	// An invoice mixing a no-company item and a subscription item must land
	// in exactly one bucket.
	details := []InvoiceDetail{
		detailWithItems("mixed", "Abonnement december", "procit correctie"),
	}

	result := Classify(details, DefaultPhraseLists())

	total := len(result.Subscription) + len(result.Other) + len(result.NoCompany)
	if total != 1 {
		t.Fatalf("expected invoice in exactly 1 bucket, found it in %d", total)
	}
	if len(result.NoCompany) != 1 {
		t.Errorf("expected no-company bucket to win")
	}
}

func TestClassifyCustomPhrases(t *testing.T) {
	phrases := PhraseLists{
		NoCompany:    []string{"interne verrekening"},
		Subscription: []string{"service contract"},
	}

	result := Classify([]InvoiceDetail{
		detailWithItems("a", "Service Contract Q3"),
		detailWithItems("b", "interne verrekening kantoor"),
		detailWithItems("c", "Abonnement december"), // not in custom list
	}, phrases)

	if len(result.Subscription) != 1 || result.Subscription[0].ID != "a" {
		t.Errorf("expected a in subscription bucket, got %v", IDs(result.Subscription))
	}
	if len(result.NoCompany) != 1 || result.NoCompany[0].ID != "b" {
		t.Errorf("expected b in no-company bucket, got %v", IDs(result.NoCompany))
	}
	if len(result.Other) != 1 || result.Other[0].ID != "c" {
		t.Errorf("expected c in other bucket, got %v", IDs(result.Other))
	}
}

func TestIDs(t *testing.T) {
	details := []InvoiceDetail{{ID: "x"}, {ID: "y"}}
	ids := IDs(details)
	if len(ids) != 2 || ids[0] != "x" || ids[1] != "y" {
		t.Errorf("unexpected ids: %v", ids)
	}
}
