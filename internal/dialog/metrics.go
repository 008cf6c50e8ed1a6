package dialog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dialog_turns_total",
		Help: "Reconciled dialogue turns by intent",
	}, []string{"intent"})

	metricClarifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialog_clarifications_total",
		Help: "Turns answered with a clarifying question instead of a ledger call",
	})

	metricStateTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dialog_state_transitions_total",
		Help: "Session booking-state transitions",
	}, []string{"from", "to"})
)
