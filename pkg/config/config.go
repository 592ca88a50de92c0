package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default path to the config directory.
	DefaultConfigPath = "./config"
	// DefaultConfigFile is the name of the config file in the config directory.
	DefaultConfigFile = "settlement.yml"
)

// Version is the version of the settler, set at build time.
var Version string

// Config top level struct representing the config
// for the settler.
type Config struct {
	ProtocolConfiguration    ProtocolConfiguration    `yaml:"ProtocolConfiguration"`
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// Load attempts to load the config from the given path.
func Load(path string) (Config, error) {
	return LoadFile(filepath.Join(path, DefaultConfigFile))
}

// LoadFile loads config from the provided path. It also applies default
// values and validates the result.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return LoadBytes(configData)
}

// LoadBytes parses config from the provided YAML data. It also applies
// default values and validates the result.
func LoadBytes(configData []byte) (Config, error) {
	config := Config{
		ProtocolConfiguration: ProtocolConfiguration{
			MaxTransferListSize:          DefaultMaxTransferListSize,
			MaxTokenTransferListSize:     DefaultMaxTokenTransferListSize,
			MaxNftTransfersLen:           DefaultMaxNftTransfersLen,
			TokenTransferUsageMultiplier: DefaultTokenTransferUsageMultiplier,
			CongestionMultiplier:         1,
		},
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel:           "info",
			DBConfiguration:    defaultDBConfiguration(),
			RecentTxnCacheSize: DefaultRecentTxnCacheSize,
		},
	}
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.ProtocolConfiguration.Validate()
	if err != nil {
		return Config{}, err
	}
	err = config.ApplicationConfiguration.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
