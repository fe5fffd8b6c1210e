package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var authOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gate_auth_operations_total",
		Help: "Authentication operations by outcome.",
	},
	[]string{"op", "outcome"},
)

func countAuthOp(op, outcome string) {
	authOperations.WithLabelValues(op, outcome).Inc()
}
