package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal       *prometheus.CounterVec
	RateLimitRejections prometheus.Counter
	GeocodeSeconds      *prometheus.HistogramVec
	GeocodeErrors       prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "mosque_api_requests_total",
			Help: "Total number of HTTP requests handled, by endpoint and status.",
		}, []string{"endpoint", "status"}),
		RateLimitRejections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "mosque_api_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter.",
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mosque_api_geocode_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "mosque_api_geocode_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
	}
}
