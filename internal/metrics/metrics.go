// Package metrics exposes harness progress as Prometheus metrics: case
// outcomes per operator, subject latency, and the in-flight subject gauge.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigcheck/internal/model"
)

// Namespace prefixes every metric name.
const Namespace = "bigcheck"

// Metrics holds the collectors of one harness instance. Each instance owns a
// private registry, so several harnesses can run in one process.
type Metrics struct {
	registry *prometheus.Registry
	cases    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
	handler  http.Handler
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cases_total",
			Help:      "Test cases classified, by operator and outcome.",
		}, []string{"operator", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "subject_duration_seconds",
			Help:      "Wall-clock time spent in the subject per case.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"operator"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "subject_inflight",
			Help:      "Subject processes currently running.",
		}),
	}
	reg.MustRegister(
		m.cases,
		m.latency,
		m.inflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// SubjectStarted increments the in-flight gauge.
func (m *Metrics) SubjectStarted() { m.inflight.Inc() }

// SubjectFinished records subject latency for op and decrements the gauge.
func (m *Metrics) SubjectFinished(op model.Operator, d time.Duration) {
	m.inflight.Dec()
	m.latency.WithLabelValues(string(op)).Observe(d.Seconds())
}

// ObserveOutcome counts a classified case.
func (m *Metrics) ObserveOutcome(op model.Operator, outcome model.Outcome) {
	m.cases.WithLabelValues(string(op), outcome.String()).Inc()
}

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", readOnly(m.WritePrometheus))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
