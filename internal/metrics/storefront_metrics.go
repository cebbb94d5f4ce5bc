// Package metrics exposes Prometheus collectors for the storefront.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Line item rejection reasons.
const (
	RejectClosed   = "closed"
	RejectNotFound = "not_found"
	RejectInvalid  = "invalid"
)

// StorefrontMetrics holds the storefront's business and transport collectors.
type StorefrontMetrics struct {
	ordersCreated     prometheus.Counter
	statusChanges     *prometheus.CounterVec
	ordersDeleted     prometheus.Counter
	lineItemsAdded    prometheus.Counter
	lineItemsRejected *prometheus.CounterVec
	authAttempts      *prometheus.CounterVec
	tokenRejections   prometheus.Counter
	requestDuration   *prometheus.HistogramVec
	storeUp           prometheus.Gauge
}

// NewStorefrontMetrics registers the collectors on the default registerer.
func NewStorefrontMetrics() *StorefrontMetrics {
	return NewStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorefrontMetricsWithRegisterer registers the collectors on registerer.
// Collectors that are already registered are reused.
func NewStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		ordersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created",
		})),
		statusChanges: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_status_changes_total",
			Help: "Total number of order status updates by resulting status",
		}, []string{"status"})),
		ordersDeleted: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_deleted_total",
			Help: "Total number of orders deleted",
		})),
		lineItemsAdded: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_line_items_added_total",
			Help: "Total number of line items admitted into open orders",
		})),
		lineItemsRejected: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_line_items_rejected_total",
			Help: "Total number of line items rejected by reason",
		}, []string{"reason"})),
		authAttempts: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Total number of login attempts by outcome",
		}, []string{"outcome"})),
		tokenRejections: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_token_rejections_total",
			Help: "Total number of requests rejected for a missing or invalid bearer token",
		})),
		requestDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "code"})),
		storeUp: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_store_up",
			Help: "Whether the last store probe succeeded (1) or failed (0)",
		})),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

func (m *StorefrontMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

func (m *StorefrontMetrics) RecordStatusChange(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *StorefrontMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

func (m *StorefrontMetrics) RecordLineItemAdded() {
	m.lineItemsAdded.Inc()
}

// RecordLineItemRejected counts a refused line item. Use the Reject* constants.
func (m *StorefrontMetrics) RecordLineItemRejected(reason string) {
	m.lineItemsRejected.WithLabelValues(reason).Inc()
}

func (m *StorefrontMetrics) RecordAuthAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.authAttempts.WithLabelValues(outcome).Inc()
}

func (m *StorefrontMetrics) RecordTokenRejected() {
	m.tokenRejections.Inc()
}

// RecordRequest observes one served HTTP request. Route is the registered
// path pattern, never the raw URL, to keep label cardinality bounded.
func (m *StorefrontMetrics) RecordRequest(method, route string, code int, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(duration.Seconds())
}

// SetStoreUp publishes the outcome of the latest store probe.
func (m *StorefrontMetrics) SetStoreUp(up bool) {
	if up {
		m.storeUp.Set(1)
		return
	}
	m.storeUp.Set(0)
}
