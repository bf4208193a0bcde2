package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PostingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "ledger",
		Name:      "postings_total",
		Help:      "Ledger postings by purpose and resulting status",
	},
	[]string{"purpose", "status"},
)

var PostedAmount = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "ledger",
		Name:      "confirmed_amount_vnd_total",
		Help:      "Confirmed amounts by type",
	},
	[]string{"type"},
)
