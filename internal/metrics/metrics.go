// Package metrics exposes orrery counters in the Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pick results.
const (
	PickHit  = "hit"
	PickMiss = "miss"
)

// Collector holds the orrery's Prometheus collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	ticks       prometheus.Counter
	picks       *prometheus.CounterVec
	assetLoads  *prometheus.CounterVec
	narrations  prometheus.Gauge
	frameRender prometheus.Histogram
}

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_ticks_total",
			Help: "Frame clock ticks since start.",
		}),
		picks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_picks_total",
				Help: "Pointer picks by result.",
			},
			[]string{"result"},
		),
		assetLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_asset_loads_total",
				Help: "Asset loads by kind and status.",
			},
			[]string{"kind", "status"},
		),
		narrations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_narrations_playing",
			Help: "Narration clips currently playing.",
		}),
		frameRender: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_render_seconds",
			Help:    "Time spent rasterizing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
	}
	c.registry.MustRegister(c.ticks, c.picks, c.assetLoads, c.narrations, c.frameRender)
	return c
}

// Tick counts one frame clock tick.
func (c *Collector) Tick() {
	c.ticks.Inc()
}

// Pick counts a pointer pick.
func (c *Collector) Pick(hit bool) {
	result := PickMiss
	if hit {
		result = PickHit
	}
	c.picks.WithLabelValues(result).Inc()
}

// AssetLoad counts a finished asset load.
func (c *Collector) AssetLoad(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.assetLoads.WithLabelValues(kind, status).Inc()
}

// SetNarrationsPlaying records the number of playing clips.
func (c *Collector) SetNarrationsPlaying(n int) {
	c.narrations.Set(float64(n))
}

// ObserveFrame records how long a frame took to draw.
func (c *Collector) ObserveFrame(d time.Duration) {
	c.frameRender.Observe(d.Seconds())
}

// Gatherer returns the private registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// Handler returns an HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return c.serve(ctx, ln)
}

func (c *Collector) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
