package ledger

import (
	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
)

// Ledger is the append-only audit trail of rejected rows. Entries are
// never removed or edited once appended. A ledger belongs to exactly
// one pipeline run and is not safe for concurrent append.
type Ledger struct {
	entries []model.DropRecord
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records one rejection.
func (l *Ledger) Append(rec model.DropRecord) {
	l.entries = append(l.entries, rec)
}

// Len returns the number of rejected rows.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns the flat audit sequence in append order.
func (l *Ledger) Entries() []model.DropRecord {
	out := make([]model.DropRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByReason groups entries for reporting. The view is a copy; mutating
// it cannot touch the trail.
func (l *Ledger) ByReason() map[enum.DropReason][]model.DropRecord {
	out := make(map[enum.DropReason][]model.DropRecord)
	for _, e := range l.entries {
		out[e.Reason] = append(out[e.Reason], e)
	}
	return out
}

// CountsByReason tallies entries per drop reason.
func (l *Ledger) CountsByReason() map[enum.DropReason]int {
	out := make(map[enum.DropReason]int)
	for _, e := range l.entries {
		out[e.Reason]++
	}
	return out
}

// Clone copies the ledger so a re-run transition can extend the trail
// without editing the original.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{entries: make([]model.DropRecord, len(l.entries))}
	copy(out.entries, l.entries)
	return out
}
