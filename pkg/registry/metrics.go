package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mergeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zenctl_registry_merge_total",
			Help: "Total number of profile registry merges",
		},
		[]string{"mode"}, // insert or update
	)

	mergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zenctl_registry_merge_duration_seconds",
			Help:    "Duration of profile registry merges in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
