package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dcosodev/news-hub/internal/model"
)

// OtherCategory labels every category outside the fixed set. Category names
// reach the provider straight from request paths.
const OtherCategory = "other"

var (
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newshub",
		Name:      "provider_failures_total",
		Help:      "Category fetches that returned no data because the provider call failed.",
	}, []string{"source", "category"})

	ArticlesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newshub",
		Name:      "articles_fetched_total",
		Help:      "Raw articles returned by the news provider.",
	}, []string{"source", "category"})

	ArticlesReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newshub",
		Name:      "articles_reconciled_total",
		Help:      "Articles committed to the store by a refresh.",
	}, []string{"category"})

	ReconcileFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "newshub",
		Name:      "reconcile_failures_total",
		Help:      "Refresh batches that were rolled back.",
	})

	FallbackCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newshub",
		Name:      "fallback_cache_requests_total",
		Help:      "Fallback cache lookups by result.",
	}, []string{"result"})
)

func CategoryLabel(category string) string {
	if model.IsKnownCategory(category) {
		return category
	}
	return OtherCategory
}
