package service

import (
	"github.com/damoang/pcmall-backend/internal/common"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	menuTreeBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "menu_tree_builds_total",
			Help:      "Menu trees built from storage, by view",
		},
		[]string{"view"},
	)

	menuTreeRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "menu_tree_repairs_total",
			Help:      "Items repositioned while building a menu tree, by kind (dangling, cycle)",
		},
		[]string{"kind"},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by area and result",
		},
		[]string{"area", "result"},
	)

	searchFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "product_search_fallback_total",
			Help:      "Product searches served by SQL because the search engine failed or is disabled",
		},
	)

	ordersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "orders_placed_total",
			Help:      "Orders successfully placed",
		},
	)
)

// cacheHit reports whether a cache read succeeded and counts it. Without
// Redis every read fails, so nothing is counted.
func cacheHit(c pkgcache.Service, area string, err error) bool {
	if !c.IsAvailable() {
		return false
	}
	if err != nil {
		cacheRequests.WithLabelValues(area, "miss").Inc()
		return false
	}
	cacheRequests.WithLabelValues(area, "hit").Inc()
	return true
}
