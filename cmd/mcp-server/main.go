package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/driver"
	sgLogger "github.com/stakegraph/stakegraph/pkg/logger"
	"github.com/stakegraph/stakegraph/pkg/mcptools"
)

// Default configuration values
const (
	DefaultEndpoint    = "https://api.stakegraph.dev/v1/graphql"
	DefaultTimeout     = 30 * time.Second
	DefaultFanOutLimit = 20
)

// Config holds all configuration for the MCP server
type Config struct {
	// Graph backend configuration
	Endpoint          string
	APIKey            string
	FollowPredicateID string
	Timeout           time.Duration

	// Pipeline configuration
	FanOutLimit int

	// Transport configuration
	Transport string
	Host      string
	Port      int

	LogLevel string
}

func loadConfig() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Endpoint, "endpoint", envOr("STAKEGRAPH_ENDPOINT", DefaultEndpoint), "Graph backend GraphQL endpoint")
	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("STAKEGRAPH_API_KEY"), "Graph backend API key")
	flag.StringVar(&cfg.FollowPredicateID, "follow-predicate-id", os.Getenv("STAKEGRAPH_FOLLOW_PREDICATE_ID"), "Term id of the follow predicate atom")
	flag.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Graph backend request timeout")
	flag.IntVar(&cfg.FanOutLimit, "fan-out-limit", envIntOr("SEMAPHORE_LIMIT", DefaultFanOutLimit), "Max concurrent interest enrichment fetches")
	flag.StringVar(&cfg.Transport, "transport", "stdio", "Transport protocol (stdio, http)")
	flag.StringVar(&cfg.Host, "host", "localhost", "Host for HTTP transport")
	flag.IntVar(&cfg.Port, "port", 8081, "Port for HTTP transport")
	flag.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.Parse()

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func main() {
	cfg := loadConfig()

	logger := slog.New(sgLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: sgLogger.ParseLevel(cfg.LogLevel),
	}))

	fetcher := driver.NewGraphQLClient(driver.Config{
		Endpoint:          cfg.Endpoint,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.Timeout,
		FollowPredicateID: cfg.FollowPredicateID,
	}, logger)

	graphConfig := stakegraph.NewDefaultConfig()
	graphConfig.FanOutLimit = cfg.FanOutLimit

	graph, err := stakegraph.NewClient(fetcher, graphConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create StakeGraph client: %v", err)
	}
	defer graph.Close()

	s := mcptools.NewServer(graph)

	switch cfg.Transport {
	case "stdio":
		logger.Info("starting MCP server on stdio")
		if err := mcpserver.ServeStdio(s); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
	case "http":
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		logger.Info("starting MCP server", "addr", addr)
		if err := mcpserver.NewStreamableHTTPServer(s).Start(addr); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
	default:
		log.Fatalf("Unsupported transport: %s", cfg.Transport)
	}
}
