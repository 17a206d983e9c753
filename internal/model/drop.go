package model

import (
	"mdcleaner/internal/model/enum"
	"mdcleaner/internal/table"
)

// DropRecord is the audit entry for one rejected row. Never mutated
// after creation; owned exclusively by the drop ledger.
type DropRecord struct {
	RowIndex int
	Stage    enum.DropStage
	Reason   enum.DropReason

	// Row is a best-effort snapshot of the original input row. Nil when
	// snapshot tracking is disabled for memory economy.
	Row table.Row
}
