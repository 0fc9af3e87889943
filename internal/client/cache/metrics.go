package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "acadium_client",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache reads served from a valid entry.",
		},
		[]string{"family"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "acadium_client",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache reads that fell through to the remote service.",
		},
		[]string{"family"},
	)

	cachePurges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "acadium_client",
			Subsystem: "cache",
			Name:      "purges_total",
			Help:      "Entries deleted on read because they were expired, corrupt or owned by another user.",
		},
		[]string{"family"},
	)
)
