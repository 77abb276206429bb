package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boutique_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boutique_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boutique_orders_created_total",
			Help: "Purchases created through the order flow",
		},
	)

	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boutique_payments_recorded_total",
			Help: "Payments recorded against purchases",
		},
	)

	PurchasesMarkedOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boutique_purchases_marked_overdue_total",
			Help: "Purchases flagged Overdue by the background checker",
		},
	)
)
