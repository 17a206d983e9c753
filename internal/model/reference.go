package model

import "mdcleaner/internal/model/enum"

// ReferenceEntry is one instrument catalog record. Extra holds columns
// beyond the required four; validation never consults them.
type ReferenceEntry struct {
	Symbol         string
	Exchange       string
	InstrumentType string
	Status         enum.InstrumentStatus
	Extra          map[string]string
	RowIndex       int
}

// Identity returns the entry's validation key.
func (e ReferenceEntry) Identity() IdentityKey {
	return IdentityKey{
		Symbol:         e.Symbol,
		InstrumentType: e.InstrumentType,
		Exchange:       e.Exchange,
	}
}
