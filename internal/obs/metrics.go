package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdcleaner_rows_loaded_total",
		Help: "Total raw quote rows loaded into the pipeline",
	})

	RowsRetained = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdcleaner_rows_retained_total",
		Help: "Total rows surviving cleaning and reference validation",
	})

	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mdcleaner_rows_dropped_total",
		Help: "Total rows dropped, by drop reason",
	}, []string{"reason"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mdcleaner_run_duration_seconds",
		Help:    "Wall time of a full load/clean/validate run",
		Buckets: prometheus.DefBuckets,
	})
)
