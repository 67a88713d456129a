package bootstrap

import (
	"go-taxdesk/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the process logger, tags it with the binary name and
// installs it as the zap global.
func NewLogger(cfg config.Config, service string) (*zap.Logger, error) {
	build := zap.NewDevelopment
	if cfg.IsProduction() {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("service", service), zap.String("env", cfg.AppEnv))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
