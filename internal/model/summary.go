package model

import (
	"github.com/google/uuid"

	"mdcleaner/internal/model/enum"
)

// CleaningSummary aggregates one pipeline run. Derived from the final
// table and the drop ledger, recomputable at any time after validation.
type CleaningSummary struct {
	RunID           uuid.UUID
	InputRows       int
	RetainedRows    int
	DroppedByReason map[enum.DropReason]int
}

// TotalDropped sums the per-reason counts.
func (s CleaningSummary) TotalDropped() int {
	total := 0
	for _, n := range s.DroppedByReason {
		total += n
	}
	return total
}
