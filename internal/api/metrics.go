package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_http_requests_total",
		Help: "HTTP requests served, by method and status class.",
	}, []string{"method", "status"})

	httpRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "api_http_request_duration_ms",
		Help:    "HTTP request handling time in milliseconds.",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})
)
