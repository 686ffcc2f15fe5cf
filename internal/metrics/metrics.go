package metrics

import (
	"net/http"
	"strconv"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "equipment_tracker"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fleetUnits      *prometheus.GaugeVec
	subscribers     prometheus.Gauge
	refreshes       *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		fleetUnits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fleet_units",
			Help:      "Equipment units per status at the last fleet snapshot",
		}, []string{"status"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_subscribers",
			Help:      "Open equipment change streams",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_refreshes_total",
			Help:      "Full equipment re-fetches triggered by change notifications",
		}, []string{"result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job executions by outcome",
		}, []string{"job", "result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.fleetUnits,
		m.subscribers,
		m.refreshes,
		m.jobRuns,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		ErrorLog:      promLogger{},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// SetFleet replaces the per-status gauges with counts.
func (m *Metrics) SetFleet(counts map[domain.EquipmentStatus]int) {
	for _, st := range domain.EquipmentStatuses {
		m.fleetUnits.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
}

func (m *Metrics) SubscriberAdded()   { m.subscribers.Inc() }
func (m *Metrics) SubscriberRemoved() { m.subscribers.Dec() }

func (m *Metrics) Refreshed(err error) {
	m.refreshes.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) JobRan(job string, err error) {
	m.jobRuns.WithLabelValues(job, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type promLogger struct{}

// Println implements promhttp.Logger
func (promLogger) Println(v ...any) {
	logger.Error("metrics handler error", "detail", v)
}
