package pipeline

import (
	"github.com/google/uuid"

	"mdcleaner/internal/ledger"
	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
	"mdcleaner/internal/normalize"
	"mdcleaner/internal/obs"
	"mdcleaner/internal/refcheck"
	"mdcleaner/internal/report"
	"mdcleaner/internal/rowfilter"
	"mdcleaner/internal/table"
)

// Options configures one pipeline run. Use DefaultOptions for the
// production defaults; the zero value disables active-only validation.
type Options struct {
	// FixDotInSymbol enables "SYM.EXCH" symbol decomposition.
	FixDotInSymbol bool

	// TrackDroppedRows keeps a snapshot of the original row on every
	// drop record and logs each rejection. Off, only stage, reason and
	// row index are kept.
	TrackDroppedRows bool

	// ValidateActiveOnly restricts reference matching to entries whose
	// Status is Active.
	ValidateActiveOnly bool

	// RequiredPriceFields and DateFormat override the normalizer
	// defaults (OHLC columns, YYYY-MM-DD).
	RequiredPriceFields []string
	DateFormat          string

	// Sink receives progress events. Nil falls back to the process
	// logger.
	Sink EventSink
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{ValidateActiveOnly: true}
}

// Controller sequences load -> clean -> validate over one quote table
// and one reference table, rejecting out-of-order calls. One controller
// owns one run: its ledger and tables are not shared across runs.
type Controller struct {
	opts Options
	norm *normalize.Normalizer
	sink EventSink

	runID uuid.UUID
	state State

	quotes *table.Table
	refs   []model.ReferenceEntry

	cleaned   []model.QuoteRecord
	validated []model.QuoteRecord

	// cleanLed holds drops up to the Cleaned state; led is the full
	// trail once Validated. Validate extends a clone of cleanLed so a
	// re-run never edits appended entries.
	cleanLed *ledger.Ledger
	led      *ledger.Ledger
}

// New creates a controller in the Created state.
func New(opts Options) *Controller {
	sink := opts.Sink
	if sink == nil {
		sink = LogsSink{}
	}
	return &Controller{
		opts: opts,
		norm: normalize.New(normalize.Options{
			FixDotInSymbol:      opts.FixDotInSymbol,
			RequiredPriceFields: opts.RequiredPriceFields,
			DateFormat:          opts.DateFormat,
		}),
		sink:  sink,
		runID: uuid.New(),
		state: StateCreated,
	}
}

// RunID identifies this pipeline run in logs, summaries and storage.
func (c *Controller) RunID() uuid.UUID {
	return c.runID
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// requiredQuoteColumns is the schema-guard set: the standard quote
// columns, or identity + configured price fields + date when the
// required price fields are overridden.
func (c *Controller) requiredQuoteColumns() []string {
	if len(c.opts.RequiredPriceFields) == 0 {
		return table.QuoteColumns()
	}
	cols := []string{table.ColSymbol, table.ColExchange, table.ColInstrumentType}
	cols = append(cols, c.opts.RequiredPriceFields...)
	return append(cols, table.ColTradeDate)
}

// Load verifies both tables against their required-column sets and
// stores them. It fails without touching pipeline state: either the
// run advances to Loaded or it stays exactly where it was.
func (c *Controller) Load(quotes, refs *table.Table) error {
	if quotes == nil {
		return &NotLoadedError{Msg: "quote table is absent"}
	}
	if refs == nil {
		return &NotLoadedError{Msg: "reference table is absent"}
	}
	if err := table.RequireColumns(quotes, "quotes", c.requiredQuoteColumns()); err != nil {
		return err
	}
	if err := table.RequireColumns(refs, "reference", table.ReferenceColumns()); err != nil {
		return err
	}

	c.quotes = quotes
	c.refs = refcheck.ParseTable(refs)
	c.cleaned = nil
	c.validated = nil
	c.cleanLed = nil
	c.led = nil
	c.state = StateLoaded

	obs.RowsLoaded.Add(float64(quotes.Len()))
	c.sink.Infof("loaded %d quote rows, %d reference rows", quotes.Len(), refs.Len())
	return nil
}

// LoadFiles reads both tables from CSV files and loads them. Unreadable
// or non-tabular input fails as NotLoadedError.
func (c *Controller) LoadFiles(quotePath, refPath string) error {
	quotes, err := table.ReadCSVFile(quotePath)
	if err != nil {
		return &NotLoadedError{Msg: "quote table is not tabular", Err: err}
	}
	refs, err := table.ReadCSVFile(refPath)
	if err != nil {
		return &NotLoadedError{Msg: "reference table is not tabular", Err: err}
	}
	return c.Load(quotes, refs)
}

// Clean normalizes every loaded row and removes empty and duplicate
// records. Re-running replaces the previous cleaning output wholesale.
func (c *Controller) Clean() error {
	if c.state < StateLoaded {
		return &InvalidStateError{Op: "clean", Want: StateLoaded, Got: c.state}
	}

	led := ledger.New()
	records := make([]model.QuoteRecord, 0, c.quotes.Len())
	for i := 0; i < c.quotes.Len(); i++ {
		rec, err := c.norm.Normalize(i, c.quotes.Row(i))
		if err != nil {
			c.reject(led, model.DropRecord{
				RowIndex: i,
				Stage:    enum.DropStageNormalization,
				Reason:   rejectReason(err),
			})
			continue
		}
		records = append(records, rec)
	}

	kept, drops := rowfilter.Apply(records)
	for _, d := range drops {
		c.reject(led, d)
	}

	c.cleaned = kept
	c.cleanLed = led
	c.validated = nil
	c.led = nil
	c.state = StateCleaned

	c.sink.Infof("rows after cleaning: %d (dropped %d)", len(kept), led.Len())
	return nil
}

// Validate retains cleaned records whose identity key matches the
// reference catalog and seals the drop ledger for this run.
func (c *Controller) Validate() error {
	if c.state < StateCleaned {
		return &InvalidStateError{Op: "validate", Want: StateCleaned, Got: c.state}
	}

	validator := refcheck.New(c.refs, c.opts.ValidateActiveOnly)
	kept, drops := validator.Apply(c.cleaned)

	led := c.cleanLed.Clone()
	for _, d := range drops {
		c.reject(led, d)
	}

	c.validated = kept
	c.led = led
	c.state = StateValidated

	obs.RowsRetained.Add(float64(len(kept)))
	c.sink.Infof("rows after reference validation: %d (dropped %d)", len(kept), len(drops))
	return nil
}

// CleanData returns the validated records in original relative order.
func (c *Controller) CleanData() ([]model.QuoteRecord, error) {
	if c.state < StateValidated {
		return nil, &InvalidStateError{Op: "clean data", Want: StateValidated, Got: c.state}
	}
	out := make([]model.QuoteRecord, len(c.validated))
	copy(out, c.validated)
	return out, nil
}

// Summary derives the cleaning summary from the final table and the
// ledger. Retained plus dropped always equals the input row count.
func (c *Controller) Summary() (model.CleaningSummary, error) {
	if c.state < StateValidated {
		return model.CleaningSummary{}, &InvalidStateError{Op: "summary", Want: StateValidated, Got: c.state}
	}
	return report.Build(c.runID, len(c.validated), c.led), nil
}

// Drops returns the flat audit sequence of rejected rows.
func (c *Controller) Drops() ([]model.DropRecord, error) {
	if c.state < StateValidated {
		return nil, &InvalidStateError{Op: "drops", Want: StateValidated, Got: c.state}
	}
	return c.led.Entries(), nil
}

// DropsByReason returns the grouped view of the audit trail.
func (c *Controller) DropsByReason() (map[enum.DropReason][]model.DropRecord, error) {
	if c.state < StateValidated {
		return nil, &InvalidStateError{Op: "drops by reason", Want: StateValidated, Got: c.state}
	}
	return c.led.ByReason(), nil
}

// reject stamps one drop into the ledger, attaching the original row
// snapshot when tracking is on.
func (c *Controller) reject(led *ledger.Ledger, d model.DropRecord) {
	if c.opts.TrackDroppedRows {
		d.Row = c.quotes.Row(d.RowIndex).Clone()
		c.sink.Warnf("dropped row %d at stage %s: %s", d.RowIndex, d.Stage, d.Reason)
	}
	led.Append(d)
	obs.RowsDropped.WithLabelValues(d.Reason.String()).Inc()
}

// rejectReason maps a normalization error onto its drop reason.
func rejectReason(err error) enum.DropReason {
	if re, ok := err.(*normalize.RowError); ok {
		return re.Reason
	}
	return enum.DropReasonInvalidPrice
}
