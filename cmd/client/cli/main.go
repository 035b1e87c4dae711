package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/agrismart/agrismart-cli/internal/client/cli"
	"github.com/agrismart/agrismart-cli/internal/client/config"
	"github.com/agrismart/agrismart-cli/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
