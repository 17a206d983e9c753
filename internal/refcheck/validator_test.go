package refcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
	"mdcleaner/internal/table"
)

func entry(symbol, exchange, status string) model.ReferenceEntry {
	return model.ReferenceEntry{
		Symbol:         symbol,
		Exchange:       exchange,
		InstrumentType: "EQUITY",
		Status:         enum.InstrumentStatus(status),
	}
}

func quote(idx int, symbol, exchange string) model.QuoteRecord {
	return model.QuoteRecord{
		Symbol:         symbol,
		Exchange:       exchange,
		InstrumentType: "EQUITY",
		Open:           1, High: 2, Low: 0.5, Close: 1.5,
		TradeDate: model.Date{Year: 2024, Month: 3, Day: 1},
		RowIndex:  idx,
	}
}

func TestExactMatchRetained(t *testing.T) {
	v := New([]model.ReferenceEntry{entry("MSFT", "NASDAQ", "Active")}, true)
	kept, drops := v.Apply([]model.QuoteRecord{quote(0, "MSFT", "NASDAQ")})
	require.Len(t, kept, 1)
	assert.Empty(t, drops)
}

func TestCaseMismatchNotRetained(t *testing.T) {
	v := New([]model.ReferenceEntry{entry("MSFT", "NYSE", "Active")}, true)
	kept, drops := v.Apply([]model.QuoteRecord{quote(0, "MSFT", "nyse")})
	assert.Empty(t, kept, "matching is exact, no case folding")
	require.Len(t, drops, 1)
	assert.Equal(t, enum.DropReasonUnmatchedInstrument, drops[0].Reason)
	assert.Equal(t, enum.DropStageReference, drops[0].Stage)
}

func TestInactiveEntriesExcluded(t *testing.T) {
	v := New([]model.ReferenceEntry{entry("MSFT", "NASDAQ", "Inactive")}, true)
	kept, drops := v.Apply([]model.QuoteRecord{quote(0, "MSFT", "NASDAQ")})
	assert.Empty(t, kept)
	require.Len(t, drops, 1)
}

func TestActiveOnlyDisabled(t *testing.T) {
	v := New([]model.ReferenceEntry{entry("MSFT", "NASDAQ", "Inactive")}, false)
	kept, _ := v.Apply([]model.QuoteRecord{quote(0, "MSFT", "NASDAQ")})
	assert.Len(t, kept, 1, "without active-only, any catalog entry matches")
}

func TestDuplicateReferenceKeysRetainQuoteOnce(t *testing.T) {
	v := New([]model.ReferenceEntry{
		entry("MSFT", "NASDAQ", "Active"),
		entry("MSFT", "NASDAQ", "Active"),
	}, true)
	kept, drops := v.Apply([]model.QuoteRecord{quote(0, "MSFT", "NASDAQ")})
	require.Len(t, kept, 1, "reference duplication never duplicates quote rows")
	assert.Empty(t, drops)
}

func TestApplyPreservesOrder(t *testing.T) {
	v := New([]model.ReferenceEntry{
		entry("AAPL", "NASDAQ", "Active"),
		entry("GOOG", "NASDAQ", "Active"),
	}, true)
	kept, drops := v.Apply([]model.QuoteRecord{
		quote(0, "AAPL", "NASDAQ"),
		quote(1, "FAKE", "UNKNOWN"),
		quote(2, "GOOG", "NASDAQ"),
	})
	require.Len(t, kept, 2)
	assert.Equal(t, "AAPL", kept[0].Symbol)
	assert.Equal(t, "GOOG", kept[1].Symbol)
	require.Len(t, drops, 1)
	assert.Equal(t, 1, drops[0].RowIndex)
}

func TestParseTable(t *testing.T) {
	tab, err := table.New([]string{"Symbol", "Exchange", "InstrumentType", "Status", "Sector"})
	require.NoError(t, err)
	require.NoError(t, tab.Append([]string{" MSFT ", "NASDAQ", "EQUITY", "Active ", "Tech"}))

	entries := ParseTable(tab)
	require.Len(t, entries, 1)
	assert.Equal(t, "MSFT", entries[0].Symbol, "identity fields are trimmed")
	assert.Equal(t, enum.InstrumentStatusActive, entries[0].Status)
	assert.Equal(t, "Tech", entries[0].Extra["Sector"], "extra columns carried but unused")
}
