package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "abacus", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "abacus", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	MailSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "abacus", Name: "mail_sends_total", Help: "Outbound emails."},
		[]string{"kind", "outcome"}, // outcome: ok|error
	)
	MailLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "abacus", Name: "mail_send_duration_seconds",
			Help:    "Outbound email delivery duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "abacus", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	ReviewsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "abacus", Name: "reviews_submitted_total", Help: "Accepted review submissions."},
	)
	ContactMessages = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "abacus", Name: "contact_messages_total", Help: "Relayed contact-form messages."},
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, MailSends, MailLatency, CacheEvents, ReviewsSubmitted, ContactMessages)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveMail(kind string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MailSends.WithLabelValues(kind, outcome).Inc()
	MailLatency.WithLabelValues(kind).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
