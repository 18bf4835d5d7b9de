package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TaskTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_transitions_total",
			Help: "Total task status transitions, by target status",
		},
		[]string{"status"},
	)
	BatchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_batch_create_outcomes_total",
			Help: "Per-item outcomes of batch task creation",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(TaskTransitions)
	prometheus.MustRegister(BatchOutcomes)
}
