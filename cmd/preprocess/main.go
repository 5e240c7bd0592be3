// cmd/preprocess/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moment-ml/preprocess/pkg/adapter"
	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/lookup"
	"github.com/moment-ml/preprocess/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Optional .env for local runs; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("preprocessing failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	factory := adapter.NewFactory(cfg, logger)

	reader, err := factory.CreateReader()
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}

	writer, err := factory.CreateWriter()
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}

	resolver, err := lookup.NewBookResolver(cfg.Lookup, logger)
	if err != nil {
		return fmt.Errorf("failed to create book resolver: %w", err)
	}

	pre, err := pipeline.NewPreprocessor(cfg, reader, writer, resolver, logger)
	if err != nil {
		return fmt.Errorf("failed to create preprocessor: %w", err)
	}

	report, err := pre.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("done",
		zap.Float64("validity_rate", report.ValidityRate),
		zap.Int("total_interpretations", report.TotalInterpretations),
		zap.Int("total_passages", report.TotalPassages),
		zap.Int("total_users", report.TotalUsers))

	return nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
