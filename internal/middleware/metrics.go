package middleware

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by area (storefront, admin, auth, system), route and status class",
		},
		[]string{"area", "method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: common.MetricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by area and route",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"area", "method", "route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: common.MetricsNamespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response body size by area",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B ~ 4MB (상품 목록, 메뉴 트리)
		},
		[]string{"area"},
	)

	httpInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: common.MetricsNamespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Requests currently being served, by area",
		},
		[]string{"area"},
	)

	dbConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: common.MetricsNamespace,
			Subsystem: "db",
			Name:      "connections",
			Help:      "Database pool connections by state (in_use, idle, open), sampled by /health",
		},
		[]string{"state"},
	)
)

// Metrics records request count, latency and response size per route
// template. The area label separates storefront traffic from back-office
// traffic so admin bulk edits do not hide shopper latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		area := routeArea(c.Request.URL.Path)
		inFlight := httpInFlight.WithLabelValues(area)
		inFlight.Inc()
		start := time.Now()

		c.Next()

		inFlight.Dec()
		route := routeTemplate(c.FullPath())
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(area, method, route, statusClass(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(area, method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			httpResponseSize.WithLabelValues(area).Observe(float64(size))
		}
	}
}

// ObserveDBStats publishes the pool counters from a health probe.
func ObserveDBStats(stats sql.DBStats) {
	dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
}

// routeArea 요청 경로 -> 영역 라벨
func routeArea(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/admin"):
		return "admin"
	case strings.HasPrefix(path, "/api/auth"):
		return "auth"
	case strings.HasPrefix(path, "/api/"):
		return "storefront"
	default:
		return "system"
	}
}

// routeTemplate returns the gin route (e.g. /api/products/:slug) so product
// slugs and order IDs don't each become a series.
func routeTemplate(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}
