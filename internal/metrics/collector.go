// Package metrics exports the monitored quota and fetch outcomes to Prometheus.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

const namespace = "grlm"

// Collector records every fetch the poller completes. It satisfies
// monitor.Observer.
type Collector struct {
	limit       prometheus.Gauge
	remaining   prometheus.Gauge
	resetTime   prometheus.Gauge
	lastSuccess prometheus.Gauge

	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewCollector creates the quota metrics for resource and registers them with reg.
func NewCollector(reg prometheus.Registerer, resource ratelimit.Resource) *Collector {
	labels := prometheus.Labels{"resource": string(resource)}

	c := &Collector{
		limit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "rate_limit_limit",
			Help:        "Requests allowed in the current window",
			ConstLabels: labels,
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "rate_limit_remaining",
			Help:        "Requests left in the current window",
			ConstLabels: labels,
		}),
		resetTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "rate_limit_reset_timestamp_seconds",
			Help:        "Unix time at which the window resets",
			ConstLabels: labels,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_success_timestamp_seconds",
			Help:        "Unix time of the last successful fetch",
			ConstLabels: labels,
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "fetches_total",
			Help:        "Fetch attempts by outcome",
			ConstLabels: labels,
		}, []string{"status"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "fetch_duration_seconds",
			Help:        "Rate limit fetch latency",
			ConstLabels: labels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	reg.MustRegister(
		c.limit, c.remaining, c.resetTime, c.lastSuccess,
		c.fetches, c.fetchDuration,
	)
	return c
}

// ObserveFetch updates the gauges on success and counts every attempt.
func (c *Collector) ObserveFetch(snap ratelimit.Snapshot, err error, took time.Duration) {
	c.fetchDuration.Observe(took.Seconds())
	c.fetches.WithLabelValues(fetchStatus(err)).Inc()
	if err != nil {
		return
	}

	c.limit.Set(float64(snap.Limit))
	c.remaining.Set(float64(snap.Remaining))
	c.resetTime.Set(float64(snap.ResetAt.Unix()))
	c.lastSuccess.SetToCurrentTime()
}

// fetchStatus is the outcome label: "ok", the lowercased error code, or "error".
func fetchStatus(err error) string {
	if err == nil {
		return "ok"
	}
	for _, code := range []string{errors.ErrAuth, errors.ErrDecode, errors.ErrFetch} {
		if errors.IsCode(err, code) {
			return strings.ToLower(code)
		}
	}
	return "error"
}
