package stakegraph

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/alert"
	"github.com/stakegraph/stakegraph/pkg/config"
	"github.com/stakegraph/stakegraph/pkg/driver"
	sgLogger "github.com/stakegraph/stakegraph/pkg/logger"
	"github.com/stakegraph/stakegraph/pkg/telemetry"
)

// initializeGraph wires the fetch client, circuit breaker, telemetry,
// and facade from one loaded config. The returned cleanup closes the
// telemetry handler and must be called on shutdown.
func initializeGraph(cfg *config.Config) (*stakegraph.Client, func(), error) {
	cleanup := func() {}

	logger := slog.New(sgLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: sgLogger.ParseLevel(cfg.Log.Level),
	}))

	// Error telemetry using Parquet
	if cfg.Telemetry.ParquetPath != "" {
		if err := os.MkdirAll(cfg.Telemetry.ParquetPath, 0755); err != nil {
			return nil, cleanup, fmt.Errorf("failed to create telemetry directory: %w", err)
		}
		colorHandler := sgLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
			Level: sgLogger.ParseLevel(cfg.Log.Level),
		})
		parquetHandler, err := telemetry.NewParquetHandler(colorHandler, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize error tracking: %v\n", err)
		} else {
			logger = slog.New(parquetHandler)
			cleanup = func() {
				if err := parquetHandler.Close(); err != nil {
					fmt.Fprintln(os.Stderr, "telemetry close:", err)
				}
			}
		}
	}

	var fetcher driver.Client = driver.NewGraphQLClient(driver.Config{
		Endpoint:          cfg.Graph.Endpoint,
		APIKey:            cfg.Graph.APIKey,
		Timeout:           time.Duration(cfg.Graph.TimeoutSeconds) * time.Second,
		FollowPredicateID: cfg.Graph.FollowPredicateID,
	}, logger)

	if cfg.CircuitBreaker.Enabled {
		var alerter alert.Alerter = &alert.NoOpAlerter{}
		if cfg.Alert.Enabled {
			alerter = alert.NewEmailAlerter(cfg.Alert)
		}
		fetcher = driver.NewBreakerClient(fetcher, cfg.CircuitBreaker, alerter, "graph-backend", logger)
	}

	client, err := stakegraph.NewClient(fetcher, pipelineConfig(cfg), logger)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create stakegraph client: %w", err)
	}
	return client, cleanup, nil
}

func pipelineConfig(cfg *config.Config) *stakegraph.Config {
	return &stakegraph.Config{
		AccountTopK:         cfg.Pipeline.AccountTopK,
		SearchTopK:          cfg.Pipeline.SearchTopK,
		SocialTopK:          cfg.Pipeline.SocialTopK,
		OppositionThreshold: cfg.Pipeline.OppositionThreshold,
		MaxEntryLength:      cfg.Pipeline.MaxEntryLength,
		FanOutLimit:         cfg.Pipeline.FanOutLimit,
	}
}
