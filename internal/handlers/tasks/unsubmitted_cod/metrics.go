package unsubmitted_cod

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OverdueOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cod_overdue_orders",
			Help: "Delivered COD orders not submitted within SLA",
		},
	)

	OverdueAmount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cod_overdue_amount",
			Help: "Cash held by drivers past the submission SLA",
		},
	)

	OverdueDrivers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cod_overdue_drivers",
			Help: "Drivers holding cash past the submission SLA",
		},
	)
)
