package rowfilter

import (
	"testing"

	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
)

func quote(idx int, symbol string, close float64) model.QuoteRecord {
	return model.QuoteRecord{
		Symbol:         symbol,
		Exchange:       "NASDAQ",
		InstrumentType: "EQUITY",
		Open:           close - 1,
		High:           close + 1,
		Low:            close - 2,
		Close:          close,
		TradeDate:      model.Date{Year: 2024, Month: 3, Day: 1},
		RowIndex:       idx,
	}
}

func TestDuplicateLaw(t *testing.T) {
	const n = 5
	records := make([]model.QuoteRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, quote(i, "AAPL", 154))
	}

	kept, drops := Apply(records)
	if len(kept) != 1 {
		t.Fatalf("kept = %d, want exactly 1 of %d copies", len(kept), n)
	}
	if kept[0].RowIndex != 0 {
		t.Fatalf("survivor row index = %d, want first-seen 0", kept[0].RowIndex)
	}
	if len(drops) != n-1 {
		t.Fatalf("drops = %d, want %d", len(drops), n-1)
	}
	for _, d := range drops {
		if d.Reason != enum.DropReasonDuplicate {
			t.Fatalf("reason = %s, want duplicate", d.Reason)
		}
		if d.Stage != enum.DropStageDuplicate {
			t.Fatalf("stage = %s, want duplicate", d.Stage)
		}
	}
}

func TestDistinctRowsSurviveInOrder(t *testing.T) {
	records := []model.QuoteRecord{
		quote(0, "AAPL", 154),
		quote(1, "MSFT", 311),
		quote(2, "AAPL", 154), // duplicate of row 0
		quote(3, "GOOG", 140),
	}

	kept, drops := Apply(records)
	if len(kept) != 3 {
		t.Fatalf("kept = %d, want 3", len(kept))
	}
	for i, want := range []string{"AAPL", "MSFT", "GOOG"} {
		if kept[i].Symbol != want {
			t.Fatalf("kept[%d] = %s, want %s (original order preserved)", i, kept[i].Symbol, want)
		}
	}
	if len(drops) != 1 || drops[0].RowIndex != 2 {
		t.Fatalf("drops = %+v, want row 2 only", drops)
	}
}

func TestRowsDifferingOnlyInOptionalFieldAreNotDuplicates(t *testing.T) {
	a := quote(0, "AAPL", 154)
	b := quote(1, "AAPL", 154)
	b.Volume = model.SomeUint64(100)

	kept, drops := Apply([]model.QuoteRecord{a, b})
	if len(kept) != 2 || len(drops) != 0 {
		t.Fatalf("kept = %d drops = %d, records differ so both must survive", len(kept), len(drops))
	}
}

func TestEmptyRowGuard(t *testing.T) {
	kept, drops := Apply([]model.QuoteRecord{{RowIndex: 7}})
	if len(kept) != 0 {
		t.Fatalf("kept = %d, want 0", len(kept))
	}
	if len(drops) != 1 || drops[0].Reason != enum.DropReasonEmptyRow || drops[0].RowIndex != 7 {
		t.Fatalf("drops = %+v, want one empty_row drop for row 7", drops)
	}
}
