package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yanun0323/decimal"

	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
	"mdcleaner/internal/table"
)

// DefaultDateFormat is the only date layout accepted unless overridden.
// No fallback formats: ambiguity between layouts is a correctness risk.
const DefaultDateFormat = "2006-01-02"

// DefaultPriceFields returns the price columns that must coerce for a
// row to survive normalization.
func DefaultPriceFields() []string {
	return []string{
		table.ColOpenPrice, table.ColHighPrice,
		table.ColLowPrice, table.ColClosePrice,
	}
}

// Options tunes per-row normalization.
type Options struct {
	// FixDotInSymbol splits "SYM.EXCH" symbols into symbol and
	// exchange when the exchange is not independently populated.
	FixDotInSymbol bool

	// RequiredPriceFields defaults to the four OHLC columns.
	RequiredPriceFields []string

	// DateFormat defaults to DefaultDateFormat.
	DateFormat string
}

func (o Options) withDefaults() Options {
	if len(o.RequiredPriceFields) == 0 {
		o.RequiredPriceFields = DefaultPriceFields()
	}
	if o.DateFormat == "" {
		o.DateFormat = DefaultDateFormat
	}
	return o
}

// RowError reports why a single row failed normalization. Row failures
// are routed to the drop ledger, never surfaced as pipeline failures.
type RowError struct {
	Reason enum.DropReason
	Field  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row rejected: %s (field %s)", e.Reason, e.Field)
}

// Normalizer converts raw rows into typed quote records. It holds no
// cross-row state; every row is normalized independently.
type Normalizer struct {
	opts Options
}

// New creates a normalizer, filling unset options with defaults.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts.withDefaults()}
}

// Normalize coerces one raw row into a QuoteRecord. On the first
// required-field failure it stops and returns a *RowError carrying the
// drop reason, so each rejected row gets exactly one reason.
func (n *Normalizer) Normalize(index int, row table.Row) (model.QuoteRecord, error) {
	rec := model.QuoteRecord{
		Symbol:         strings.TrimSpace(row.Get(table.ColSymbol)),
		Exchange:       strings.TrimSpace(row.Get(table.ColExchange)),
		InstrumentType: strings.TrimSpace(row.Get(table.ColInstrumentType)),
		RowIndex:       index,
	}

	if n.opts.FixDotInSymbol {
		if err := decomposeSymbol(&rec); err != nil {
			return model.QuoteRecord{}, err
		}
	}

	required := make(map[string]struct{}, len(n.opts.RequiredPriceFields))
	for _, f := range n.opts.RequiredPriceFields {
		required[f] = struct{}{}
	}

	targets := []struct {
		col string
		dst *float64
	}{
		{table.ColOpenPrice, &rec.Open},
		{table.ColHighPrice, &rec.High},
		{table.ColLowPrice, &rec.Low},
		{table.ColClosePrice, &rec.Close},
	}
	for _, t := range targets {
		v, err := parsePrice(row.Get(t.col))
		if err != nil {
			if _, ok := required[t.col]; ok {
				return model.QuoteRecord{}, &RowError{Reason: enum.DropReasonInvalidPrice, Field: t.col}
			}
			continue
		}
		*t.dst = v
		delete(required, t.col)
	}
	// Required fields beyond the OHLC set have no record slot but must
	// still coerce for the row to survive.
	for col := range required {
		if _, err := parsePrice(row.Get(col)); err != nil {
			return model.QuoteRecord{}, &RowError{Reason: enum.DropReasonInvalidPrice, Field: col}
		}
	}

	// The round-trip comparison pins the cell to the exact layout:
	// time.Parse alone also accepts non-padded forms like 2024-3-1.
	rawDate := strings.TrimSpace(row.Get(table.ColTradeDate))
	date, err := time.Parse(n.opts.DateFormat, rawDate)
	if err != nil || date.Format(n.opts.DateFormat) != rawDate {
		return model.QuoteRecord{}, &RowError{Reason: enum.DropReasonInvalidDate, Field: table.ColTradeDate}
	}
	rec.TradeDate = model.DateOf(date)

	rec.Volume = parseCount(row.Get(table.ColVolume))
	rec.OpenInterest = parseCount(row.Get(table.ColOpenInterest))

	return rec, nil
}

// decomposeSymbol splits "SYM.EXCH" when the pattern holds: exactly one
// separator, both parts non-empty. An already-populated exchange is
// never silently overwritten; a disagreement rejects the row.
func decomposeSymbol(rec *model.QuoteRecord) error {
	sym, exch, ok := strings.Cut(rec.Symbol, ".")
	if !ok || sym == "" || exch == "" || strings.Contains(exch, ".") {
		return nil
	}
	switch {
	case rec.Exchange == "" || rec.Exchange == exch:
		rec.Symbol = sym
		rec.Exchange = exch
	default:
		return &RowError{Reason: enum.DropReasonSymbolExchangeConflict, Field: table.ColSymbol}
	}
	return nil
}

// parsePrice coerces a price cell under a strict grammar: optional
// sign, digits, at most one decimal point. Go's float syntax also
// accepts NaN, Inf, hex floats and underscore separators, none of
// which are valid quote prices.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !isPlainDecimal(s) {
		return 0, fmt.Errorf("not a plain decimal numeral: %q", s)
	}
	if _, err := decimal.New(s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

func isPlainDecimal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	digit, dot := false, false
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digit = true
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digit
}

// parseCount coerces an optional unsigned cell; failures yield an
// absent value instead of rejecting the row.
func parseCount(s string) model.OptUint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.OptUint64{}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return model.OptUint64{}
	}
	return model.SomeUint64(v)
}
