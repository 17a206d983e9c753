package report

import (
	"github.com/google/uuid"

	"mdcleaner/internal/ledger"
	"mdcleaner/internal/model"
)

// Build derives a cleaning summary from the retained row count and the
// drop ledger. It is a pure function: calling it twice over the same
// inputs yields the same summary, and the partition property holds by
// construction (input = retained + total dropped).
func Build(runID uuid.UUID, retained int, led *ledger.Ledger) model.CleaningSummary {
	counts := led.CountsByReason()
	return model.CleaningSummary{
		RunID:           runID,
		InputRows:       retained + led.Len(),
		RetainedRows:    retained,
		DroppedByReason: counts,
	}
}
