// Package config loads the oracle's configuration: a YAML file
// layered with CLI flag overrides, following the teacher's
// go-flags-over-YAML convention.
package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API layer.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig configures the logging façade.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SchedulerConfig configures the snapshot scheduler.
type SchedulerConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Pairs           []string `yaml:"pairs"`
}

// StorageConfig configures the badger persistence layer.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// PriceFetcherConfig configures the default price source adapter.
type PriceFetcherConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// EthereumConfig configures the signing key and gas policy shared by
// every chain the publisher submits to.
type EthereumConfig struct {
	PrivateKey string `yaml:"private_key"`
	GasLimit   uint64 `yaml:"gas_limit"`
	GasPrice   string `yaml:"gas_price"`
	MinBalance string `yaml:"min_balance"`
}

// ChainConfig seeds one registry chain and its subscriptions at
// startup.
type ChainConfig struct {
	ChainID       uint64               `yaml:"chain_id"`
	Name          string               `yaml:"name"`
	RPC           string               `yaml:"rpc"`
	Subscriptions []SubscriptionConfig `yaml:"subscriptions"`
}

// SubscriptionConfig seeds one subscription on a chain.
type SubscriptionConfig struct {
	Address         string `yaml:"address"`
	RPC             string `yaml:"rpc"`
	ContractAddress string `yaml:"contract_address"`
}

// Config is the complete, validated oracle configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Storage      StorageConfig      `yaml:"storage"`
	PriceFetcher PriceFetcherConfig `yaml:"price_fetcher"`
	Ethereum     EthereumConfig     `yaml:"ethereum"`
	Chains       []ChainConfig      `yaml:"chains"`
}

// flagOptions overrides config-file values from the command line.
type flagOptions struct {
	ConfigPath string `short:"c" long:"config" description:"path to the YAML config file" default:"config.yaml"`
	Host       string `long:"host" description:"override server.host"`
	Port       int    `long:"port" description:"override server.port"`
	LogLevel   string `long:"log-level" description:"override logging.level"`
	DBPath     string `long:"db-path" description:"override storage.db_path"`
}

// Load parses CLI flags from args, reads the YAML file they name (or
// default "config.yaml"), and applies any flag overrides on top.
func Load(args []string) (*Config, error) {
	var opts flagOptions
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	raw, err := os.ReadFile(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", opts.ConfigPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", opts.ConfigPath, err)
	}

	applyOverrides(&cfg, opts)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyOverrides(cfg *Config, opts flagOptions) {
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.DBPath != "" {
		cfg.Storage.DBPath = opts.DBPath
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port == 0 {
		return fmt.Errorf("config: server.port is required")
	}
	if cfg.Scheduler.IntervalSeconds <= 0 {
		return fmt.Errorf("config: scheduler.interval_seconds must be positive")
	}
	if cfg.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is required")
	}
	if cfg.PriceFetcher.Endpoint == "" {
		return fmt.Errorf("config: price_fetcher.endpoint is required")
	}
	return nil
}
