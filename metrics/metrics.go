package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsConfig struct {
	Enable bool
	Listen string
	Logger *slog.Logger
}

type MetricsInterface interface {
	IncQueriesIssued()
	IncQueriesFailed()
	AddRecordsReceived(count int)
	GetQueryTimer() *prometheus.Timer
	ObserveTimer(*prometheus.Timer)
	Start() error
}

func GetMetrics(config MetricsConfig) MetricsInterface {
	if config.Enable {
		return newPrometheus(config)
	}
	return DummyMetrics{}
}
