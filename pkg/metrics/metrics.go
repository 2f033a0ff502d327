package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TriggerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trigger_events_total",
			Help: "Total number of change events consumed, by event kind",
		},
		[]string{"kind"},
	)

	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatches_total",
			Help: "Total number of dispatches performed, by notification category",
		},
		[]string{"category"},
	)

	SendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_sends_total",
			Help: "Total number of individual sends, by result",
		},
		[]string{"result"},
	)
)
