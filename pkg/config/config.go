package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Graph backend configuration
	Graph GraphConfig `mapstructure:"graph"`

	// Pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// Alert configuration
	Alert AlertConfig `mapstructure:"alert"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// GraphConfig holds graph backend configuration
type GraphConfig struct {
	Endpoint          string `mapstructure:"endpoint"`
	APIKey            string `mapstructure:"api_key"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	FollowPredicateID string `mapstructure:"follow_predicate_id"`
}

// PipelineConfig holds position processing policy. Top-K values are per
// operation; counts and thresholds apply to the digest view only.
type PipelineConfig struct {
	AccountTopK         int     `mapstructure:"account_top_k"`
	SearchTopK          int     `mapstructure:"search_top_k"`
	SocialTopK          int     `mapstructure:"social_top_k"`
	OppositionThreshold float64 `mapstructure:"opposition_threshold"`
	MaxEntryLength      int     `mapstructure:"max_entry_length"`
	FanOutLimit         int     `mapstructure:"fan_out_limit"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// AlertConfig holds configuration for alerting
type AlertConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	SMTPHost string   `mapstructure:"smtp_host"`
	SMTPPort int      `mapstructure:"smtp_port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Graph backend defaults
	viper.SetDefault("graph.endpoint", "https://api.stakegraph.dev/v1/graphql")
	viper.SetDefault("graph.timeout_seconds", 30)
	viper.SetDefault("graph.follow_predicate_id", "")

	// Pipeline defaults
	viper.SetDefault("pipeline.account_top_k", 10)
	viper.SetDefault("pipeline.search_top_k", 20)
	viper.SetDefault("pipeline.social_top_k", 5)
	viper.SetDefault("pipeline.opposition_threshold", 0.25)
	viper.SetDefault("pipeline.max_entry_length", 200)
	viper.SetDefault("pipeline.fan_out_limit", 20)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", false)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	// Telemetry defaults
	home, err := os.UserHomeDir()
	if err == nil {
		defaultPath := fmt.Sprintf("%s/.stakegraph/telemetry", home)
		viper.SetDefault("telemetry.parquet_path", defaultPath)
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if endpoint := os.Getenv("STAKEGRAPH_ENDPOINT"); endpoint != "" {
		config.Graph.Endpoint = endpoint
	}
	if apiKey := os.Getenv("STAKEGRAPH_API_KEY"); apiKey != "" {
		config.Graph.APIKey = apiKey
	}
	if predicate := os.Getenv("STAKEGRAPH_FOLLOW_PREDICATE_ID"); predicate != "" {
		config.Graph.FollowPredicateID = predicate
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
