// Package metrics holds Prometheus instruments that are used across the
// order client and API.  All collectors are registered with the global
// registry, so importing this package in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersAcceptedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_accepted_total",
			Help: "Cumulative number of orders accepted by the order API, by client device.",
		}, []string{"device"})

	OrdersRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Cumulative number of orders rejected, by reason.",
		}, []string{"reason"})

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of order API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"})

	ClientSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_client_submissions_total",
			Help: "Order form submissions, by outcome.",
		}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		OrdersAcceptedTotal,
		OrdersRejectedTotal,
		RequestDuration,
		ClientSubmissionsTotal,
	)
}
