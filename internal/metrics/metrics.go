package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// Metrics exposes retention engine counters and gauges.
type Metrics struct {
	sweepRunsTotal    *prometheus.CounterVec
	sweepDeletedTotal prometheus.Counter
	sweepLastDeleted  prometheus.Gauge
	sweepLastRunUnix  prometheus.Gauge
	purgeRunsTotal    *prometheus.CounterVec
	purgeDeletedTotal *prometheus.CounterVec
	purgeLastRunUnix  prometheus.Gauge
}

// New registers the retention metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the retention metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		sweepRunsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "sweep_runs_total",
				Help:      "Total retention sweep runs partitioned by result.",
			},
			[]string{"result"},
		),
		sweepDeletedTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "sweep_deleted_total",
				Help:      "Total number of records soft-deleted by sweeps.",
			},
		),
		sweepLastDeleted: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "sweep_last_deleted",
				Help:      "Number of records soft-deleted in the most recent sweep.",
			},
		),
		sweepLastRunUnix: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "sweep_last_run_unix",
				Help:      "Unix time of the most recent sweep run.",
			},
		),
		purgeRunsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "purge_runs_total",
				Help:      "Total purge runs partitioned by result.",
			},
			[]string{"result"},
		),
		purgeDeletedTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "purge_deleted_total",
				Help:      "Total number of records permanently removed, by store.",
			},
			[]string{"store"},
		),
		purgeLastRunUnix: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "portal",
				Subsystem: "retention",
				Name:      "purge_last_run_unix",
				Help:      "Unix time of the most recent purge run.",
			},
		),
	}
}

func resultLabel(errorCount int) string {
	if errorCount > 0 {
		return "partial_failure"
	}
	return "ok"
}

// ObserveSweep records the outcome of one sweep run.
func (m *Metrics) ObserveSweep(res retention.SweepResult) {
	m.sweepRunsTotal.WithLabelValues(resultLabel(res.ErrorCount)).Inc()
	m.sweepDeletedTotal.Add(float64(res.TotalDeleted))
	m.sweepLastDeleted.Set(float64(res.TotalDeleted))
	m.sweepLastRunUnix.Set(float64(time.Now().Unix()))
}

// ObservePurge records the outcome of one purge run.
func (m *Metrics) ObservePurge(res retention.PurgeResult) {
	m.purgeRunsTotal.WithLabelValues(resultLabel(res.ErrorCount)).Inc()
	for store, n := range res.Purged {
		m.purgeDeletedTotal.WithLabelValues(store).Add(float64(n))
	}
	m.purgeLastRunUnix.Set(float64(time.Now().Unix()))
}
