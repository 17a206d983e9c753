package refcheck

import (
	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
)

// Validator retains quote records whose identity key exactly matches a
// reference catalog entry. Matching is string-exact: no case folding,
// no fuzzing. Duplicate reference keys collapse into one set entry, so
// reference-side duplication never duplicates quote rows.
type Validator struct {
	keys map[model.IdentityKey]struct{}
}

// New indexes the reference entries. With activeOnly set, only entries
// whose status is Active participate.
func New(entries []model.ReferenceEntry, activeOnly bool) *Validator {
	keys := make(map[model.IdentityKey]struct{}, len(entries))
	for _, e := range entries {
		if activeOnly && !e.Status.IsActive() {
			continue
		}
		keys[e.Identity()] = struct{}{}
	}
	return &Validator{keys: keys}
}

// Match reports whether a record's identity key is in the catalog.
func (v *Validator) Match(rec model.QuoteRecord) bool {
	_, ok := v.keys[rec.Identity()]
	return ok
}

// Apply splits records into retained and dropped, preserving order.
func (v *Validator) Apply(records []model.QuoteRecord) (kept []model.QuoteRecord, drops []model.DropRecord) {
	kept = make([]model.QuoteRecord, 0, len(records))
	for _, rec := range records {
		if v.Match(rec) {
			kept = append(kept, rec)
			continue
		}
		drops = append(drops, model.DropRecord{
			RowIndex: rec.RowIndex,
			Stage:    enum.DropStageReference,
			Reason:   enum.DropReasonUnmatchedInstrument,
		})
	}
	return kept, drops
}
