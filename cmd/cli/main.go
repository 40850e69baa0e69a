package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/avetikov/cityreport/internal/client/cli"
	"github.com/avetikov/cityreport/internal/client/config"
	"github.com/avetikov/cityreport/internal/logging"
)

func main() {
	// A missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Env)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
