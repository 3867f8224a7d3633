package main

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lg/wellness-coach-go-api/internal/coach"
)

const metricsNamespace = "wellness_coach"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	plansSelected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plans_selected_total",
			Help:      "Count of recommendation selections by BMI category and feature set.",
		},
		[]string{"category", "feature_set"},
	)

	sessionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_transitions_total",
			Help:      "Count of questionnaire sessions entering each step.",
		},
		[]string{"step"},
	)
)

// registerMetrics registers collectors with the default registry (idempotent).
func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, plansSelected, sessionTransitions)
	})
}

// telemetryMiddleware records request count and latency per route template.
func telemetryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// metricsHandler exposes the default registry for scraping.
func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func observePlan(sel coach.RecommendationSelection) {
	plansSelected.WithLabelValues(string(sel.Category), sel.FeatureSet).Inc()
}

func observeTransition(step coach.Step) {
	sessionTransitions.WithLabelValues(string(step)).Inc()
}
