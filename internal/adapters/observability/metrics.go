package observability

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "db_queries_total", Help: "Database queries."},
		[]string{"op", "result"},
	)
	DBLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "db_query_duration_seconds",
			Help:    "Database query duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	ReviewsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "reviews_classified_total", Help: "Classified reviews by label and bucket."},
		[]string{"sentiment", "bucket"},
	)
	ReviewScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "review_score",
			Help:    "Compound sentiment scores.",
			Buckets: []float64{-1, -0.5, -0.05, 0.05, 0.5, 1},
		},
	)
	BatchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "batch_duration_seconds",
			Help:    "Time to fetch, classify and write one batch.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Serve exposes the default registry on addr. An empty addr disables it.
func Serve(addr string) (*http.Server, error) {
	if addr == "" {
		return nil, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("metrics server listening")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv, nil
}

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests, HTTPLatency, DBQueries, DBLatency, CacheEvents,
		ReviewsClassified, ReviewScores, BatchLatency,
	}
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors()...)
	return reg
}

// RegisterDefault registers the collectors with the global registry served by Serve.
func RegisterDefault() {
	for _, c := range collectors() {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				log.Warn().Err(err).Msg("metric registration failed")
			}
		}
	}
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveQuery(op string, err error, dur time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DBQueries.WithLabelValues(op, result).Inc()
	DBLatency.WithLabelValues(op).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveClassified(sentiment, bucket string, score float64) {
	ReviewsClassified.WithLabelValues(sentiment, bucket).Inc()
	ReviewScores.Observe(score)
}

func ObserveBatch(dur time.Duration) { BatchLatency.Observe(dur.Seconds()) }
