package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meridian_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReactionToggles counts reaction toggle operations by outcome
	// (created, changed, removed).
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meridian_reaction_toggles_total",
		Help: "Total number of reaction toggles by outcome",
	}, []string{"outcome"})

	// ToggleConflictRetries counts unique-constraint conflicts recovered by
	// re-reading and re-applying the toggle transition.
	ToggleConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meridian_reaction_toggle_conflict_retries_total",
		Help: "Total number of toggle write conflicts recovered by retry",
	})

	// GeocoderLookups counts geocoding lookups by result (hit, miss, error).
	GeocoderLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meridian_geocoder_lookups_total",
		Help: "Total number of geocoder lookups by result",
	}, []string{"result"})
)

// InitMetrics creates the Prometheus middleware for HTTP-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
