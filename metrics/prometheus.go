package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusMetrics struct {
	queriesIssued   prometheus.Counter
	queriesFailed   prometheus.Counter
	recordsReceived prometheus.Counter
	queryTime       prometheus.HistogramVec

	config MetricsConfig
}

func (ms PrometheusMetrics) IncQueriesIssued() {
	ms.queriesIssued.Inc()
}

func (ms PrometheusMetrics) IncQueriesFailed() {
	ms.queriesFailed.Inc()
}

func (ms PrometheusMetrics) AddRecordsReceived(count int) {
	ms.recordsReceived.Add(float64(count))
}

func (ms PrometheusMetrics) GetQueryTimer() *prometheus.Timer {
	return prometheus.NewTimer(ms.queryTime.WithLabelValues("query"))
}

func (ms PrometheusMetrics) ObserveTimer(timer *prometheus.Timer) {
	if timer != nil {
		timer.ObserveDuration()
	}
}

func (ms PrometheusMetrics) Start() error {
	if ms.config.Enable {
		go func() {
			ms.config.Logger.Info("Starting prometheus metrics", "listen", ms.config.Listen, "endpoint", "/metrics")
			http.Handle("/metrics", promhttp.Handler())
			http.ListenAndServe(ms.config.Listen, nil)
		}()
	}

	return nil
}

func newPrometheus(config MetricsConfig) PrometheusMetrics {
	return PrometheusMetrics{
		queriesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnsdbq_queries_issued",
			Help: "The total number of API queries issued since last start",
		}),
		queriesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnsdbq_queries_failed",
			Help: "The number of API queries that failed since last start",
		}),
		recordsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnsdbq_records_received",
			Help: "The total number of passive DNS records received since last start",
		}),
		queryTime: *promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "dnsdbq_duration_seconds",
			Help:      "Response time of DNSDB API queries",
			Namespace: "dnsdbq",
		}, []string{"action"}),
		config: config,
	}
}
