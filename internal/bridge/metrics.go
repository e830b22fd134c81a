// internal/bridge/metrics.go

package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_bridge_events_total",
			Help: "Total number of push events dispatched to the stores",
		},
		[]string{"event"},
	)

	eventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_bridge_events_dropped_total",
			Help: "Total number of push events dropped at the decode boundary",
		},
		[]string{"event"},
	)

	connectionState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "client_bridge_connection_state",
			Help: "Bridge connection state (0=disconnected, 1=connecting, 2=connected)",
		},
	)
)
