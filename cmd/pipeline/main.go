package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/teatak/cntext/config"
	"github.com/teatak/cntext/logging"
	"github.com/teatak/cntext/pipeline"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (environment variables override)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level)
	defer log.Sync()

	if err := pipeline.New(cfg, log).Run(context.Background()); err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}
}
