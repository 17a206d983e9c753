package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"

	"mdcleaner/internal/model"
)

const batchSize = 1000

// QuoteRow is the persisted form of a validated quote record.
type QuoteRow struct {
	ID             uint   `gorm:"primaryKey"`
	RunID          string `gorm:"index;size:36"`
	RowIndex       int
	Symbol         string `gorm:"index"`
	Exchange       string
	InstrumentType string
	Open           float64
	High           float64
	Low            float64
	Close          float64
	Volume         *uint64
	OpenInterest   *uint64
	TradeDate      time.Time
	CreatedAt      time.Time
}

// DropRow is the persisted form of one drop ledger entry.
type DropRow struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"index;size:36"`
	RowIndex  int
	Stage     string
	Reason    string `gorm:"index"`
	Snapshot  string
	CreatedAt time.Time
}

// RunRow records the summary of one pipeline run.
type RunRow struct {
	RunID        string `gorm:"primaryKey;size:36"`
	InputRows    int
	RetainedRows int
	DroppedRows  int
	CreatedAt    time.Time
}

// Store persists validated quotes and the drop audit trail.
type Store struct {
	db *gorm.DB
}

// New wraps a gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the backing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&RunRow{}, &QuoteRow{}, &DropRow{}); err != nil {
		return errors.Wrap(err, "migrate store tables")
	}
	return nil
}

// SaveRun writes one run's summary, validated quotes and drops in a
// single transaction.
func (s *Store) SaveRun(ctx context.Context, summary model.CleaningSummary, quotes []model.QuoteRecord, drops []model.DropRecord) error {
	runID := summary.RunID.String()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := RunRow{
			RunID:        runID,
			InputRows:    summary.InputRows,
			RetainedRows: summary.RetainedRows,
			DroppedRows:  summary.TotalDropped(),
		}
		if err := tx.Create(&run).Error; err != nil {
			return errors.Wrap(err, "insert run row")
		}

		if len(quotes) > 0 {
			rows := make([]QuoteRow, 0, len(quotes))
			for _, q := range quotes {
				rows = append(rows, quoteRow(runID, q))
			}
			if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
				return errors.Wrap(err, "insert quote rows")
			}
		}

		if len(drops) > 0 {
			rows := make([]DropRow, 0, len(drops))
			for _, d := range drops {
				rows = append(rows, dropRow(runID, d))
			}
			if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
				return errors.Wrap(err, "insert drop rows")
			}
		}
		return nil
	})
}

func quoteRow(runID string, q model.QuoteRecord) QuoteRow {
	row := QuoteRow{
		RunID:          runID,
		RowIndex:       q.RowIndex,
		Symbol:         q.Symbol,
		Exchange:       q.Exchange,
		InstrumentType: q.InstrumentType,
		Open:           q.Open,
		High:           q.High,
		Low:            q.Low,
		Close:          q.Close,
		TradeDate:      q.TradeDate.Time(),
	}
	if q.Volume.Valid {
		v := q.Volume.Value
		row.Volume = &v
	}
	if q.OpenInterest.Valid {
		v := q.OpenInterest.Value
		row.OpenInterest = &v
	}
	return row
}

func dropRow(runID string, d model.DropRecord) DropRow {
	row := DropRow{
		RunID:    runID,
		RowIndex: d.RowIndex,
		Stage:    d.Stage.String(),
		Reason:   d.Reason.String(),
	}
	if d.Row != nil {
		if snap, err := json.Marshal(d.Row); err == nil {
			row.Snapshot = string(snap)
		}
	}
	return row
}
