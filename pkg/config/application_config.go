package config

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/core/storage/dbconfig"
	"go.uber.org/zap/zapcore"
)

// DefaultRecentTxnCacheSize is the default number of recently processed
// transaction IDs remembered for duplicate detection.
const DefaultRecentTxnCacheSize = 10000

// ApplicationConfiguration config specific to the settler.
type ApplicationConfiguration struct {
	LogLevel        string                   `yaml:"LogLevel"`
	LogPath         string                   `yaml:"LogPath"`
	DBConfiguration dbconfig.DBConfiguration `yaml:"DBConfiguration"`
	Prometheus      BasicService             `yaml:"Prometheus"`
	// FeeScheduleCacheSize is the number of token custom fee schedules
	// cached in memory, a default is used if not positive.
	FeeScheduleCacheSize int `yaml:"FeeScheduleCacheSize"`
	// RecentTxnCacheSize is the number of recently processed transaction
	// IDs remembered for duplicate detection.
	RecentTxnCacheSize int `yaml:"RecentTxnCacheSize"`
}

func defaultDBConfiguration() dbconfig.DBConfiguration {
	return dbconfig.DBConfiguration{Type: dbconfig.InMemoryDB}
}

// Validate checks ApplicationConfiguration for internal consistency and returns
// an error if any invalid settings are found.
func (a *ApplicationConfiguration) Validate() error {
	if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
		return fmt.Errorf("invalid LogLevel: %w", err)
	}
	switch a.DBConfiguration.Type {
	case dbconfig.InMemoryDB, dbconfig.LevelDB, dbconfig.BoltDB:
	default:
		return fmt.Errorf("unknown DB type: %q", a.DBConfiguration.Type)
	}
	if a.RecentTxnCacheSize <= 0 {
		return fmt.Errorf("RecentTxnCacheSize must be positive, got %d", a.RecentTxnCacheSize)
	}
	if a.Prometheus.Enabled && len(a.Prometheus.Addresses) == 0 {
		return fmt.Errorf("no addresses for enabled Prometheus service")
	}
	return nil
}
