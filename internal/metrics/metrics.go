// Package metrics exposes Prometheus collectors for searches, the result cache
// and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperjump/talentmatch/internal/ranking"
)

// Config controls metric exposure.
type Config struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`     // default: true
	Namespace string `yaml:"namespace" mapstructure:"namespace"` // default: talentmatch
	Path      string `yaml:"path" mapstructure:"path"`           // default: /metrics
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{Enabled: true, Namespace: "talentmatch", Path: "/metrics"}
}

// ApplyDefaults fills in zero values with defaults. Enabled is left alone.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if c.Path == "" {
		c.Path = d.Path
	}
}

// Search outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNoSkills = "no_skills"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds all collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	searches        *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	searchResults   prometheus.Histogram
	pipelineDropped *prometheus.CounterVec
	refinements     prometheus.Counter
	cacheRequests   *prometheus.CounterVec
	eligible        prometheus.Gauge
	tableReloads    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers the collectors under namespace.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultConfig().Namespace
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by outcome",
		}, []string{"outcome"}),
		searchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of scoring and sorting one search",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		searchResults: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		pipelineDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_dropped_total",
			Help:      "Candidates dropped per pipeline step",
		}, []string{"step"}),
		refinements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refinements_total",
			Help:      "Total number of result refinements",
		}),
		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Result cache lookups by result",
		}, []string{"result"}),
		eligible: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates_eligible",
			Help:      "Searchable candidates seen by the last search",
		}),
		tableReloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_reloads_total",
			Help:      "Synonym and location table reloads by result",
		}, []string{"result"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(stats ranking.Stats) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(OutcomeOK).Inc()
	m.searchDuration.Observe(stats.Duration.Seconds())
	m.searchResults.Observe(float64(stats.Returned))
	m.eligible.Set(float64(stats.Candidates))
	for _, step := range stats.Steps {
		m.pipelineDropped.WithLabelValues(step.Name).Add(float64(step.Dropped))
	}
}

// SearchFailed records a search that produced no ranking.
func (m *Metrics) SearchFailed(outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
}

// Refined records one refinement.
func (m *Metrics) Refined() {
	if m == nil {
		return
	}
	m.refinements.Inc()
}

// CacheLookup records a cache hit, miss or error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

// TableReload records a table reload attempt.
func (m *Metrics) TableReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.tableReloads.WithLabelValues(result).Inc()
}

// ObserveHTTP records one HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
