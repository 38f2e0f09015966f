package telemetry

import (
	"github.com/doug-fsg/controlei/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterGormTracing attaches the otelgorm plugin so every query runs in
// a child span of the request. Query variables never reach the span:
// ledger amounts and client data stay out of the trace backend.
func RegisterGormTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	logger.Info("Database tracing enabled")
	return nil
}
