package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	SummarizerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfoliopulse",
			Subsystem: "brief",
			Name:      "summarizer_latency_seconds",
			Help:      "Latency of summarizer calls",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	SummarizerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfoliopulse",
			Subsystem: "brief",
			Name:      "summarizer_errors_total",
			Help:      "Failed summarizer calls",
		},
		[]string{"provider"},
	)

	NewsItems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "portfoliopulse",
			Subsystem: "brief",
			Name:      "news_items",
			Help:      "News items forwarded to the summarizer per brief",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		},
	)
)

// Register adds the brief collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(SummarizerLatency, SummarizerErrors, NewsItems)
	})
}
