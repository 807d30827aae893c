package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "healthcare_client",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the backend, by status code and method.",
		},
		[]string{"code", "method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "healthcare_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of backend requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "healthcare_client",
			Name:      "requests_in_flight",
			Help:      "Backend requests currently waiting for a response.",
		},
	)
)

func instrumentTransport(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(requestsInFlight,
		promhttp.InstrumentRoundTripperCounter(requestsTotal,
			promhttp.InstrumentRoundTripperDuration(requestDuration, next),
		),
	)
}
