package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countryapi_lookups_total",
		Help: "Reverse lookups by result (match, no_match, out_of_range, bad_request)",
	}, []string{"result"})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "countryapi_lookup_duration_ms",
		Help:    "Reverse lookup duration in milliseconds, cache included",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 50},
	})
	CountryMatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countryapi_country_matches_total",
		Help: "Successful lookups per ISO code",
	}, []string{"iso"})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countryapi_cache_hits_total",
		Help: "Lookup cache hits by layer (local, redis)",
	}, []string{"layer"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countryapi_cache_misses_total",
		Help: "Lookup cache misses by layer (local, redis)",
	}, []string{"layer"})
	IPLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countryapi_ip_lookups_total",
		Help: "IP lookups by result",
	}, []string{"result"})
	CatalogCountries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "countryapi_catalog_countries",
		Help: "Countries in the loaded catalog",
	})
	IndexEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "countryapi_index_entries",
		Help: "Polygons registered in the spatial index",
	})
	IndexMaxCellLoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "countryapi_index_max_cell_load",
		Help: "Largest candidate list of any grid cell",
	})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "countryapi_rate_limited_total",
		Help: "Requests rejected by the token bucket",
	})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(CountryMatchesTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(IPLookupsTotal)
	prometheus.MustRegister(CatalogCountries)
	prometheus.MustRegister(IndexEntries)
	prometheus.MustRegister(IndexMaxCellLoad)
	prometheus.MustRegister(RateLimitedTotal)
}

// 文档注释：返回 Prometheus 指标处理器
// 背景：在主入口挂载到 {API_BASE}/metrics。
func Handler() http.Handler { return promhttp.Handler() }
