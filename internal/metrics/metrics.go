// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific collectors.
	Registry = prometheus.NewRegistry()

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nibtara",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"},
	)

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nibtara",
			Subsystem: "auth",
			Name:      "registrations_total",
			Help:      "Successful registrations and role upgrades by role.",
		},
		[]string{"role"},
	)

	logouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nibtara",
			Subsystem: "auth",
			Name:      "logouts_total",
			Help:      "Logouts by scope (single or all).",
		},
		[]string{"scope"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nibtara",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(logins, registrations, logouts, httpDuration)
}

func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	logins.WithLabelValues(result).Inc()
}

func RecordRegistration(role string) {
	registrations.WithLabelValues(role).Inc()
}

func RecordLogout(all bool) {
	scope := "single"
	if all {
		scope = "all"
	}
	logouts.WithLabelValues(scope).Inc()
}

// Middleware observes request durations labelled by matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		httpDuration.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
