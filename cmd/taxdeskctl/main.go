package main

import (
	"os"

	"go-taxdesk/internal/cli"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	if err != nil {
		panic(err)
	}

	code := cli.Execute(logger)
	_ = logger.Sync()
	os.Exit(code)
}
