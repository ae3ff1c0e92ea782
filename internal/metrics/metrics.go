// Package metrics регистрирует прикладные метрики Prometheus.
// Эндпоинт /metrics обслуживается promhttp в маршрутах приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrdersTotal — количество заказов по итоговому статусу (fulfilled/failed).
var OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pizza_orders",
	Name:      "orders_total",
	Help:      "Number of submitted orders by final status.",
}, []string{"status"})

// FactoryRequestDuration — длительность обращений к фабрике.
var FactoryRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pizza_orders",
	Name:      "factory_request_duration_seconds",
	Help:      "Duration of factory confirmation calls.",
	Buckets:   prometheus.DefBuckets,
})
