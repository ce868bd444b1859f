// Package metrics defines the Prometheus collectors for similarity scoring,
// sentence alignment and the HTTP API, and exposes a scrape handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/poiesic/cilin/align"
	"github.com/poiesic/cilin/similarity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cilin"

var scoreBuckets = prometheus.LinearBuckets(0, 0.1, 11)

// Metrics holds the collectors, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	SimilarityTotal      *prometheus.CounterVec
	SimilarityDuration   *prometheus.HistogramVec
	SimilarityScore      *prometheus.HistogramVec
	AlignmentsTotal      *prometheus.CounterVec
	AlignmentDuration    prometheus.Histogram
	AlignmentScore       prometheus.Histogram
	TaxonomyEntries      prometheus.Gauge
	TaxonomyWords        prometheus.Gauge
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	_ similarity.Observer = (*Metrics)(nil)
	_ align.Observer      = (*Metrics)(nil)
)

// New creates and registers all collectors, plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SimilarityTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "similarity_total",
				Help:      "Word-pair similarity computations by strategy and status.",
			},
			[]string{"strategy", "status"},
		),
		SimilarityDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "similarity_duration_seconds",
				Help:      "Word-pair similarity latency in seconds.",
				Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"strategy"},
		),
		SimilarityScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "similarity_score",
				Help:      "Distribution of successful word-pair scores.",
				Buckets:   scoreBuckets,
			},
			[]string{"strategy"},
		),
		AlignmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alignments_total",
				Help:      "Sentence alignments by status.",
			},
			[]string{"status"},
		),
		AlignmentDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "alignment_duration_seconds",
				Help:      "Sentence alignment latency in seconds.",
				Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		AlignmentScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "alignment_score",
				Help:      "Distribution of successful alignment scores.",
				Buckets:   scoreBuckets,
			},
		),
		TaxonomyEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "taxonomy_entries",
				Help:      "Number of codes in the loaded taxonomy.",
			},
		),
		TaxonomyWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "taxonomy_words",
				Help:      "Number of word occurrences in the loaded taxonomy.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed.",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SimilarityTotal,
		m.SimilarityDuration,
		m.SimilarityScore,
		m.AlignmentsTotal,
		m.AlignmentDuration,
		m.AlignmentScore,
		m.TaxonomyEntries,
		m.TaxonomyWords,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
	)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSimilarity implements similarity.Observer.
func (m *Metrics) ObserveSimilarity(strategy similarity.Strategy, score float64, elapsed time.Duration, err error) {
	label := strategy.String()
	m.SimilarityTotal.WithLabelValues(label, status(err)).Inc()
	m.SimilarityDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	if err == nil {
		m.SimilarityScore.WithLabelValues(label).Observe(score)
	}
}

// ObserveAlignment implements align.Observer.
func (m *Metrics) ObserveAlignment(score float64, elapsed time.Duration, err error) {
	m.AlignmentsTotal.WithLabelValues(status(err)).Inc()
	m.AlignmentDuration.Observe(elapsed.Seconds())
	if err == nil {
		m.AlignmentScore.Observe(score)
	}
}

// SetTaxonomy records the size of the loaded taxonomy.
func (m *Metrics) SetTaxonomy(entries, words int) {
	m.TaxonomyEntries.Set(float64(entries))
	m.TaxonomyWords.Set(float64(words))
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records HTTP request count, latency, and in-flight gauge.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}
