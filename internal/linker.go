package internal

import (
	"github.com/google/uuid"
)

// LinkResult is the output of the subscription-invoice linking step.
type LinkResult struct {
	// IDs is the set of current-API invoice IDs generated under a
	// subscription.
	IDs map[string]bool
	// Unresolved lists legacy invoice IDs that could not be mapped to a
	// current API ID.
	Unresolved []UnresolvedRef
}

// LinkSubscriptionInvoices resolves, for each subscription, the legacy IDs
// of its generated invoices and remaps each through the migration lookup.
// Migration misses are collected as unresolved references instead of being
// dropped; API errors abort.
func LinkSubscriptionInvoices(tl CurrentAPI, tl1 LegacyAPI, subs []RawSubscription) (LinkResult, error) {
	result := LinkResult{IDs: make(map[string]bool)}

	var legacyIDs []string
	for _, sub := range subs {
		ids, err := tl1.InvoicesBySubscription(sub.ID)
		if err != nil {
			return LinkResult{}, err
		}
		legacyIDs = append(legacyIDs, ids...)
	}

	for _, legacyID := range legacyIDs {
		newID, ok, err := tl.MigrateID("invoice", legacyID)
		if err != nil {
			return LinkResult{}, err
		}
		if !ok {
			result.Unresolved = append(result.Unresolved, UnresolvedRef{
				Kind:     "invoice",
				LegacyID: legacyID,
				Reason:   "no migration match",
			})
			continue
		}
		if _, err := uuid.Parse(newID); err != nil {
			result.Unresolved = append(result.Unresolved, UnresolvedRef{
				Kind:     "invoice",
				LegacyID: legacyID,
				Reason:   "migrated ID is not a valid UUID: " + newID,
			})
			continue
		}
		result.IDs[newID] = true
	}

	return result, nil
}
