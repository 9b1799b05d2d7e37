// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts notification dispatch attempts by channel and
	// outcome ("ok" or "error").
	DispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtnotify",
		Name:      "dispatches_total",
		Help:      "Notification dispatch attempts by channel and outcome.",
	}, []string{"channel", "outcome"})

	// DecisionsTotal counts boxwork decision evaluations by outcome
	// ("notify" or "skip").
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtnotify",
		Name:      "boxwork_decisions_total",
		Help:      "Boxwork notification decisions by outcome.",
	}, []string{"outcome"})

	// HolidayRefreshesTotal counts holiday cache refresh runs by outcome.
	HolidayRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtnotify",
		Name:      "holiday_refreshes_total",
		Help:      "Holiday calendar cache refreshes by outcome.",
	}, []string{"outcome"})
)
