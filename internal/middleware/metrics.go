package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "weconnect_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// MailDeliveries counts outbound mail attempts by outcome.
var MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "weconnect_mail_deliveries_total",
	Help: "Total number of outbound mail deliveries by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
