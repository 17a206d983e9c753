package refcheck

import (
	"strings"

	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
	"mdcleaner/internal/table"
)

// ParseTable converts a raw reference table into typed entries.
// Identity fields and status are trimmed so reference matching sees the
// same normalization the quote side gets; extra columns are carried
// untouched for downstream enrichment but never consulted here.
func ParseTable(t *table.Table) []model.ReferenceEntry {
	known := map[string]struct{}{
		table.ColSymbol:         {},
		table.ColExchange:       {},
		table.ColInstrumentType: {},
		table.ColStatus:         {},
	}

	entries := make([]model.ReferenceEntry, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		entry := model.ReferenceEntry{
			Symbol:         strings.TrimSpace(row.Get(table.ColSymbol)),
			Exchange:       strings.TrimSpace(row.Get(table.ColExchange)),
			InstrumentType: strings.TrimSpace(row.Get(table.ColInstrumentType)),
			Status:         enum.InstrumentStatus(strings.TrimSpace(row.Get(table.ColStatus))),
			RowIndex:       i,
		}
		for col, val := range row {
			if _, ok := known[col]; ok {
				continue
			}
			if entry.Extra == nil {
				entry.Extra = make(map[string]string)
			}
			entry.Extra[col] = val
		}
		entries = append(entries, entry)
	}
	return entries
}
