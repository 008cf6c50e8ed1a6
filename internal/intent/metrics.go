package intent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricClassifyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "intent_classify_latency_ms",
		Help:    "Latency of one intent classification round trip",
		Buckets: prometheus.ExponentialBuckets(50, 1.6, 10),
	})

	metricClassifyErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intent_classify_errors_total",
		Help: "Classification calls that failed outright",
	})

	metricClarifyReplies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intent_clarify_replies_total",
		Help: "Model replies that were clarifying questions rather than intents",
	})
)
