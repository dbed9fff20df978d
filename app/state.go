package app

import (
	"log/slog"

	"github.com/thenaterhood/dnsdbq/metrics"
)

type AppState struct {
	Log     *slog.Logger
	Metrics metrics.MetricsInterface
}
