package enum

// DropReason is the stable vocabulary naming why a row was excluded.
// The strings feed both ledger entries and summary aggregation, so
// they never change once published.
type DropReason string

const (
	DropReasonInvalidPrice           DropReason = "invalid_price"
	DropReasonInvalidDate            DropReason = "invalid_date"
	DropReasonSymbolExchangeConflict DropReason = "symbol_exchange_conflict"
	DropReasonEmptyRow               DropReason = "empty_row"
	DropReasonDuplicate              DropReason = "duplicate"
	DropReasonUnmatchedInstrument    DropReason = "unmatched_instrument"
)

func (r DropReason) String() string {
	return string(r)
}
