package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := Execute(ctx); err != nil {
		logger.Sugar().Errorf("renta: %v", err)
		os.Exit(1)
	}
}
