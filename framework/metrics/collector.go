// Package metrics exports container resolution and eviction metrics to
// Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-ioc/framework/container"
)

const namespace = "ioc"

// ResultOK labels successful resolutions; failures are labelled with the
// lowercased container error code.
const ResultOK = "ok"

// Collector implements container.Observer and owns its own registry.
type Collector struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evictions   *prometheus.CounterVec
}

var _ container.Observer = (*Collector)(nil)

// NewCollector creates a collector whose registry also carries the Go
// runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of alias resolutions by result",
			},
			[]string{"alias", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Time spent resolving an alias, including nested resolutions",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"alias"},
		),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evictions_total",
				Help:      "Total number of cached instances evicted",
			},
			[]string{"alias"},
		),
	}

	c.registry.MustRegister(
		c.resolutions,
		c.duration,
		c.evictions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Resolved(alias string, d time.Duration, err error) {
	c.resolutions.WithLabelValues(alias, Result(err)).Inc()
	c.duration.WithLabelValues(alias).Observe(d.Seconds())
}

func (c *Collector) Evicted(alias string) {
	c.evictions.WithLabelValues(alias).Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Result maps a resolution error to its metric label.
func Result(err error) string {
	if err == nil {
		return ResultOK
	}
	var cerr *container.Error
	if errors.As(err, &cerr) {
		return strings.ToLower(cerr.Code.String())
	}
	return "error"
}
