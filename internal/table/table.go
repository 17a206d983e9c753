package table

import (
	"errors"
)

// Column names of the raw quote feed.
const (
	ColSymbol         = "Symbol"
	ColExchange       = "Exchange"
	ColInstrumentType = "InstrumentType"
	ColOpenPrice      = "OpenPrice"
	ColHighPrice      = "HighPrice"
	ColLowPrice       = "LowPrice"
	ColClosePrice     = "ClosePrice"
	ColVolume         = "Volume"
	ColOpenInterest   = "OpenInterest"
	ColTradeDate      = "TradeDate"
	ColStatus         = "Status"
)

var (
	ErrNoColumns    = errors.New("table: no columns")
	ErrColumnArity  = errors.New("table: cell count does not match columns")
	ErrDuplicateCol = errors.New("table: duplicate column name")
)

// QuoteColumns returns the columns every raw quote table must carry.
func QuoteColumns() []string {
	return []string{
		ColSymbol, ColExchange, ColInstrumentType,
		ColOpenPrice, ColHighPrice, ColLowPrice, ColClosePrice,
		ColTradeDate,
	}
}

// ReferenceColumns returns the columns every reference table must carry.
func ReferenceColumns() []string {
	return []string{ColSymbol, ColExchange, ColInstrumentType, ColStatus}
}

// Row is one raw input row keyed by column name. Cell values are kept
// exactly as supplied; an absent column has no key.
type Row map[string]string

// Get returns the cell value for a column, empty when absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Clone copies the row so a snapshot survives later mutation of the table.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory tabular input. Columns carries the original
// column order; Rows carries every row in input order.
type Table struct {
	cols   []string
	colSet map[string]struct{}
	rows   []Row
}

// New creates a table with the given column order.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := set[c]; ok {
			return nil, ErrDuplicateCol
		}
		set[c] = struct{}{}
	}
	return &Table{
		cols:   append([]string(nil), columns...),
		colSet: set,
	}, nil
}

// Append adds one row. Cells map positionally onto the table columns.
func (t *Table) Append(cells []string) error {
	if len(cells) != len(t.cols) {
		return ErrColumnArity
	}
	row := make(Row, len(cells))
	for i, c := range t.cols {
		row[c] = cells[i]
	}
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns the column names in input order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether the table carries a column, case-sensitive.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}
