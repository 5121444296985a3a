package applier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	applyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zenctl_apply_total",
		Help: "Total number of apply runs by status.",
	}, []string{"status"})

	applyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zenctl_apply_duration_seconds",
		Help:    "Duration of apply runs.",
		Buckets: prometheus.DefBuckets,
	})
)
