package metrics

import "github.com/prometheus/client_golang/prometheus"

type DummyMetrics struct{}

func (ds DummyMetrics) IncQueriesIssued()                {}
func (ds DummyMetrics) IncQueriesFailed()                {}
func (ds DummyMetrics) AddRecordsReceived(_ int)         {}
func (ds DummyMetrics) GetQueryTimer() *prometheus.Timer { return nil }
func (ds DummyMetrics) ObserveTimer(_ *prometheus.Timer) {}
func (ds DummyMetrics) Start() error                     { return nil }
