package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamCalls *prometheus.CounterVec
	assetErrors   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg registers on the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		upstreamCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfoliopulse_upstream_calls_total",
				Help: "Upstream provider calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		assetErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfoliopulse_asset_errors_total",
				Help: "Item-level failures folded into aggregation results",
			},
			[]string{"source"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portfoliopulse_last_price",
				Help: "Last observed close for a ticker",
			},
			[]string{"ticker"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfoliopulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
	}
}

// RecordUpstreamCall counts one upstream call. outcome is "ok", "error" or "cached".
func (r *Recorder) RecordUpstreamCall(provider, outcome string) {
	r.upstreamCalls.WithLabelValues(provider, outcome).Inc()
}

// RecordAssetError counts an item-level failure.
func (r *Recorder) RecordAssetError(source string) {
	r.assetErrors.WithLabelValues(source).Inc()
}

// RecordLastPrice records the last price for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordUpstreamCall(string, string) {}
func (Nop) RecordAssetError(string)           {}
func (Nop) RecordLastPrice(string, float64)   {}
func (Nop) RecordLatency(string, float64)     {}
