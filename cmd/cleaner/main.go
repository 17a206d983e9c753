package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"mdcleaner/internal/model"
	"mdcleaner/internal/obs"
	"mdcleaner/internal/ops"
	"mdcleaner/internal/pipeline"
	"mdcleaner/internal/store"
	"mdcleaner/internal/table"
	"mdcleaner/pkg/conn"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("cleaner: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "YAML config path (flags below override nothing when set)")
	quotesFlag := flag.String("quotes", "", "raw quote CSV path")
	refFlag := flag.String("reference", "", "instrument reference CSV path")
	outFlag := flag.String("out", "", "cleaned output CSV path (optional)")
	fixDotFlag := flag.Bool("fix-dot", false, "split SYM.EXCH symbols")
	trackFlag := flag.Bool("track-drops", false, "keep original-row snapshots for dropped rows")
	flag.Parse()

	cfg, err := resolveConfig(*configFlag, *quotesFlag, *refFlag, *outFlag, *fixDotFlag, *trackFlag)
	if err != nil {
		return err
	}

	if cfg.Profiling.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "mdcleaner",
			ServerAddress:   cfg.Profiling.ServerAddress,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return errors.Wrap(err, "start profiler")
		}
		defer profiler.Stop()
	}

	if cfg.Metrics.Port > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logs.Warnf("metrics server stopped: %v", err)
			}
		}()
	}

	logs.Info("starting market data cleaning pipeline")
	start := time.Now()

	ctrl := pipeline.New(cfg.PipelineOptions())
	if err := ctrl.LoadFiles(cfg.Input.QuoteCSV, cfg.Input.ReferenceCSV); err != nil {
		return err
	}
	if err := ctrl.Clean(); err != nil {
		return err
	}
	if err := ctrl.Validate(); err != nil {
		return err
	}
	obs.RunDuration.Observe(time.Since(start).Seconds())

	summary, err := ctrl.Summary()
	if err != nil {
		return err
	}
	logs.Infof("run %s: input=%d retained=%d dropped=%d",
		summary.RunID, summary.InputRows, summary.RetainedRows, summary.TotalDropped())
	for reason, count := range summary.DroppedByReason {
		logs.Infof("  dropped %-24s %d", reason, count)
	}

	records, err := ctrl.CleanData()
	if err != nil {
		return err
	}

	if cfg.Output.CleanCSV != "" {
		if err := writeCleanCSV(cfg.Output.CleanCSV, records); err != nil {
			return err
		}
		logs.Infof("cleaned data saved to %s", cfg.Output.CleanCSV)
	}

	if cfg.Database.Enabled {
		drops, err := ctrl.Drops()
		if err != nil {
			return err
		}
		if err := saveToPostgres(cfg, summary, records, drops); err != nil {
			return err
		}
		logs.Infof("run %s persisted to postgres", summary.RunID)
	}

	return nil
}

// resolveConfig loads the YAML file when given, otherwise builds a
// config from the command line flags.
func resolveConfig(path, quotes, ref, out string, fixDot, track bool) (*ops.FileConfig, error) {
	if path != "" {
		return ops.LoadAndValidate(path)
	}
	if quotes == "" || ref == "" {
		return nil, errors.New("missing input; use -config or -quotes and -reference")
	}
	cfg := &ops.FileConfig{}
	cfg.Input.QuoteCSV = quotes
	cfg.Input.ReferenceCSV = ref
	cfg.Output.CleanCSV = out
	cfg.Cleaning.FixDotInSymbol = fixDot
	cfg.Cleaning.TrackDroppedRows = track
	return cfg, cfg.Validate()
}

func writeCleanCSV(path string, records []model.QuoteRecord) error {
	cols := []string{
		table.ColSymbol, table.ColExchange, table.ColInstrumentType,
		table.ColOpenPrice, table.ColHighPrice, table.ColLowPrice, table.ColClosePrice,
		table.ColVolume, table.ColOpenInterest, table.ColTradeDate,
	}
	t, err := table.New(cols)
	if err != nil {
		return err
	}
	for _, q := range records {
		if err := t.Append([]string{
			q.Symbol, q.Exchange, q.InstrumentType,
			formatPrice(q.Open), formatPrice(q.High), formatPrice(q.Low), formatPrice(q.Close),
			formatCount(q.Volume), formatCount(q.OpenInterest),
			q.TradeDate.String(),
		}); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output csv").With("path", path)
	}
	defer f.Close()
	return table.WriteCSV(f, t)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCount(v model.OptUint64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatUint(v.Value, 10)
}

func saveToPostgres(cfg *ops.FileConfig, summary model.CleaningSummary, records []model.QuoteRecord, drops []model.DropRecord) error {
	db, err := conn.Open(conn.Option{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return errors.Wrap(err, "open postgres")
	}
	defer conn.Close(db)

	ctx := context.Background()
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	return st.SaveRun(ctx, summary, records, drops)
}
