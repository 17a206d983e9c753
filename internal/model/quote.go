package model

// OptUint64 is an optional unsigned counter field. Valid is false when
// the source cell was absent or did not coerce.
type OptUint64 struct {
	Value uint64
	Valid bool
}

// SomeUint64 returns a present optional value.
func SomeUint64(v uint64) OptUint64 {
	return OptUint64{Value: v, Valid: true}
}

// QuoteRecord is one normalized daily quote. Construction goes through
// the normalizer; a record that exists always carries four finite
// prices and a valid trade date.
type QuoteRecord struct {
	Symbol         string
	Exchange       string
	InstrumentType string

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume       OptUint64
	OpenInterest OptUint64

	TradeDate Date

	// RowIndex is the position of the source row in the raw input,
	// kept for audit. It does not participate in duplicate detection.
	RowIndex int
}

// IdentityKey is the exact-match triple used for reference validation.
type IdentityKey struct {
	Symbol         string
	InstrumentType string
	Exchange       string
}

// Identity returns the record's validation key.
func (q QuoteRecord) Identity() IdentityKey {
	return IdentityKey{
		Symbol:         q.Symbol,
		InstrumentType: q.InstrumentType,
		Exchange:       q.Exchange,
	}
}
