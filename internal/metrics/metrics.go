// Package metrics exposes Prometheus counters and histograms for the
// server dispatcher, scoped to the fltr_rpc_* namespace the way the
// teacher's pkg/metrics/prometheus package scopes dittofs's own
// request metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts every handled RPC call, labeled by procedure
	// name and outcome ("ok" or "error").
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fltr_rpc_requests_total",
		Help: "Total number of fltr RPC requests handled, by procedure and status.",
	}, []string{"procedure", "status"})

	// RequestDuration observes handler latency in seconds, labeled by
	// procedure name.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fltr_rpc_duration_seconds",
		Help:    "fltr RPC handler latency in seconds, by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	// TransferBytes observes the size of uploaded/downloaded file
	// content, labeled by direction.
	TransferBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fltr_transfer_bytes",
		Help:    "Size in bytes of files transferred, by direction.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	}, []string{"direction"})
)

// Handler returns the standard Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Status renders an error number as the label value RequestsTotal uses:
// "ok" for 0, "error" for anything else.
func Status(errNum int32) string {
	if errNum == 0 {
		return "ok"
	}
	return "error"
}
