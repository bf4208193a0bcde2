package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "order",
		Name:      "transitions_total",
		Help:      "Order state machine transitions by action and result",
	},
	[]string{"action", "result"},
)

var CreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "order",
		Name:      "created_total",
		Help:      "Created orders by service type",
	},
	[]string{"service_type"},
)

func transitionResult(err error) string {
	if err == nil {
		return "ok"
	}
	return "rejected"
}
