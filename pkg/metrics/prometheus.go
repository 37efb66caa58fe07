package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик
type Metrics struct {
	// Бизнес-метрики
	FlowOperationsTotal *prometheus.CounterVec
	FlowDuration        *prometheus.HistogramVec
	PushedValue         prometheus.Histogram
	GraphNodesTotal     *prometheus.HistogramVec
	GraphEdgesTotal     *prometheus.HistogramVec
	TransfersExtracted  *prometheus.HistogramVec
	CacheResultsTotal   *prometheus.CounterVec

	// Системные метрики
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec

	// StoreDuration times calls out to the edge store, labeled by
	// operation (e.g. "list_edges"). Timed with NewTimer.
	StoreDuration *prometheus.HistogramVec

	// InFlightFlows counts computeFlow requests currently running.
	InFlightFlows prometheus.Gauge

	// Runtime is the process-wide RuntimeCollector registered against
	// the default registerer by InitMetrics.
	Runtime *RuntimeCollector

	tracker *RequestTracker
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		// Бизнес-метрики
		FlowOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_operations_total",
				Help:      "Total number of computeFlow operations",
			},
			[]string{"status"},
		),

		FlowDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_duration_seconds",
				Help:      "Duration of computeFlow operations",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"status"},
		),

		PushedValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_pushed_ratio",
				Help:      "Fraction of the requested amount actually pushed (0 to 1)",
				Buckets:   []float64{0, .1, .25, .5, .75, .9, .99, 1},
			},
		),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_nodes_total",
				Help:      "Number of pseudo-node graph nodes built per request",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of trust edges submitted per request",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"operation"},
		),

		TransfersExtracted: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_extracted",
				Help:      "Number of concrete transfers extracted per request",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
			[]string{"status"},
		),

		CacheResultsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_cache_results_total",
				Help:      "Total number of computeFlow cache lookups",
			},
			[]string{"result"}, // hit, miss
		),

		// Системные метрики
		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),

		StoreDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_operation_duration_seconds",
				Help:      "Duration of edge store operations",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),

		InFlightFlows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_in_flight",
				Help:      "Number of computeFlow requests currently running",
			},
		),
	}

	m.Runtime = NewRuntimeCollector(namespace, subsystem)
	prometheus.MustRegister(m.Runtime)

	m.tracker = NewRequestTracker(m.InFlightFlows)

	defaultMetrics = m
	return m
}

// InFlightTracker returns the RequestTracker counting in-flight computeFlow
// requests against InFlightFlows.
func (m *Metrics) InFlightTracker() *RequestTracker {
	return m.tracker
}

// Get возвращает глобальные метрики
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("trustflow", "")
	}
	return defaultMetrics
}

// RecordFlowOperation записывает метрики операции computeFlow
func (m *Metrics) RecordFlowOperation(success bool, duration time.Duration, requested, pushed float64) {
	status := "success"
	if !success {
		status = "error"
	}

	m.FlowOperationsTotal.WithLabelValues(status).Inc()
	m.FlowDuration.WithLabelValues(status).Observe(duration.Seconds())

	if success && requested > 0 {
		m.PushedValue.Observe(pushed / requested)
	}
}

// RecordGraphSize записывает размер входного графа
func (m *Metrics) RecordGraphSize(operation string, nodes, edges int) {
	m.GraphNodesTotal.WithLabelValues(operation).Observe(float64(nodes))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// RecordTransfers записывает количество извлечённых переводов
func (m *Metrics) RecordTransfers(status string, count int) {
	m.TransfersExtracted.WithLabelValues(status).Observe(float64(count))
}

// RecordCacheResult записывает попадание или промах кэша computeFlow
func (m *Metrics) RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheResultsTotal.WithLabelValues(result).Inc()
}

// SetServiceInfo устанавливает информацию о сервисе
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler возвращает HTTP handler для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer запускает HTTP сервер для метрик
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		// Игнорируем ошибку записи - response уже отправлен
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, ошибка записи не критична
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
