package service

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "publika",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total number of orders stored, by package",
		},
		[]string{"package"},
	)

	ordersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "publika",
			Subsystem: "orders",
			Name:      "submit_failed_total",
			Help:      "Total number of orders that failed to be stored",
		},
	)

	statusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "publika",
			Subsystem: "orders",
			Name:      "status_updates_total",
			Help:      "Total number of order status updates, by new status",
		},
		[]string{"status"},
	)
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ordersPlaced, ordersFailed, statusUpdates)
}
