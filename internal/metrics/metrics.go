package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covbot_commands_served_total",
			Help: "Total number of commands handled, by verb",
		},
		[]string{"command"},
	)

	LookupResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covbot_lookup_results_total",
			Help: "Location lookup outcomes: none, single, multiple, too_many",
		},
		[]string{"outcome"},
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "covbot_source_fetch_duration_seconds",
			Help: "Duration of upstream feed fetches",
		},
		[]string{"source"},
	)

	SourceFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covbot_source_fetch_failures_total",
			Help: "Failed upstream feed fetches",
		},
		[]string{"source"},
	)

	SnapshotAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "covbot_snapshot_age_seconds",
			Help: "Age of the in-memory case snapshot at last refresh check",
		},
	)
)
