package main

import (
	"go-taxdesk/internal/app"
	"go-taxdesk/internal/bootstrap"
	"go-taxdesk/internal/config"
	"go-taxdesk/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := bootstrap.NewLogger(cfg, "taxdesk-consumer")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
