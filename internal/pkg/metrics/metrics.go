// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "delivery_portal"

// Metrics groups every collector of the portal. Create it once per registry.
type Metrics struct {
	OrdersActive         *prometheus.GaugeVec
	OrdersDeliveredToday *prometheus.GaugeVec
	OrdersTotal          *prometheus.GaugeVec

	OrdersCreatedTotal  prometheus.Counter
	StatusChangesTotal  *prometheus.CounterVec
	StatsJobErrorsTotal prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		OrdersActive: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_active",
			Help:      "Orders in received, sent or in_transit status.",
		}, []string{"company"}),

		OrdersDeliveredToday: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_delivered_today",
			Help:      "Orders delivered since local midnight.",
		}, []string{"company"}),

		OrdersTotal: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "All orders ever created.",
		}, []string{"company"}),

		OrdersCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders successfully created through the API.",
		}),

		StatusChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Applied status transitions by target status.",
		}, []string{"to"}),

		StatsJobErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_job_errors_total",
			Help:      "Failed statistics refreshes.",
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// SetOrderStats publishes one company's counters.
func (m *Metrics) SetOrderStats(company string, active, deliveredToday, total int64) {
	m.OrdersActive.WithLabelValues(company).Set(float64(active))
	m.OrdersDeliveredToday.WithLabelValues(company).Set(float64(deliveredToday))
	m.OrdersTotal.WithLabelValues(company).Set(float64(total))
}
