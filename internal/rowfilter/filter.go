package rowfilter

import (
	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
)

// Apply removes fully empty rows and exact duplicates from a normalized
// record set. The first-seen record of a duplicate group survives and
// the surviving slice preserves the original relative order.
func Apply(records []model.QuoteRecord) (kept []model.QuoteRecord, drops []model.DropRecord) {
	seen := make(map[model.QuoteRecord]struct{}, len(records))
	kept = make([]model.QuoteRecord, 0, len(records))

	for _, rec := range records {
		key := dedupKey(rec)

		if isEmpty(key) {
			drops = append(drops, model.DropRecord{
				RowIndex: rec.RowIndex,
				Stage:    enum.DropStageFilter,
				Reason:   enum.DropReasonEmptyRow,
			})
			continue
		}

		if _, dup := seen[key]; dup {
			drops = append(drops, model.DropRecord{
				RowIndex: rec.RowIndex,
				Stage:    enum.DropStageDuplicate,
				Reason:   enum.DropReasonDuplicate,
			})
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, rec)
	}
	return kept, drops
}

// dedupKey compares every field except the original row position.
func dedupKey(rec model.QuoteRecord) model.QuoteRecord {
	rec.RowIndex = 0
	return rec
}

// isEmpty guards against fully blank rows. Unreachable after the
// normalizer's required-field checks, kept as an explicit guard should
// a relaxed schema ever let one through.
func isEmpty(key model.QuoteRecord) bool {
	return key == model.QuoteRecord{}
}
