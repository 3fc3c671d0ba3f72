package stakegraph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage StakeGraph configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter configuration file with the default settings to
$HOME/.stakegraph.yaml, or to the path given with --output.
Existing files are never overwritten unless --force is set.`,
	RunE: runConfigInit,
}

var (
	configInitOutput string
	configInitForce  bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitOutput, "output", "", "Output path (default $HOME/.stakegraph.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}

// starterConfig mirrors the config file schema with the default values
// filled in, ready to edit.
type starterConfig struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Graph struct {
		Endpoint          string `yaml:"endpoint"`
		APIKey            string `yaml:"api_key"`
		TimeoutSeconds    int    `yaml:"timeout_seconds"`
		FollowPredicateID string `yaml:"follow_predicate_id"`
	} `yaml:"graph"`
	Pipeline struct {
		AccountTopK         int     `yaml:"account_top_k"`
		SearchTopK          int     `yaml:"search_top_k"`
		SocialTopK          int     `yaml:"social_top_k"`
		OppositionThreshold float64 `yaml:"opposition_threshold"`
		MaxEntryLength      int     `yaml:"max_entry_length"`
		FanOutLimit         int     `yaml:"fan_out_limit"`
	} `yaml:"pipeline"`
	Telemetry struct {
		ParquetPath string `yaml:"parquet_path"`
	} `yaml:"telemetry"`
	CircuitBreaker struct {
		Enabled          bool    `yaml:"enabled"`
		MaxRequests      uint32  `yaml:"max_requests"`
		Interval         int     `yaml:"interval"`
		Timeout          int     `yaml:"timeout"`
		ReadyToTripRatio float64 `yaml:"ready_to_trip_ratio"`
	} `yaml:"circuit_breaker"`
}

func defaultStarterConfig() *starterConfig {
	cfg := &starterConfig{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8080
	cfg.Server.Mode = "debug"
	cfg.Graph.Endpoint = "https://api.stakegraph.dev/v1/graphql"
	cfg.Graph.TimeoutSeconds = 30
	cfg.Pipeline.AccountTopK = 10
	cfg.Pipeline.SearchTopK = 20
	cfg.Pipeline.SocialTopK = 5
	cfg.Pipeline.OppositionThreshold = 0.25
	cfg.Pipeline.MaxEntryLength = 200
	cfg.Pipeline.FanOutLimit = 20
	cfg.CircuitBreaker.MaxRequests = 3
	cfg.CircuitBreaker.Interval = 60
	cfg.CircuitBreaker.Timeout = 30
	cfg.CircuitBreaker.ReadyToTripRatio = 0.6
	return cfg
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitOutput
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".stakegraph.yaml")
	}

	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(defaultStarterConfig())
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Wrote starter config to %s\n", path)
	return nil
}
