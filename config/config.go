// Package config contains the configuration of the ledger and its defaults.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/ledger"
	"github.com/spacemeshos/go-ledger/metrics"
)

const (
	defaultDataDir    = "./ledger_data"
	defaultIssuerKey  = "issuer.key"
	defaultKeysDir    = "keys"
	defaultJournalDB  = "journal.sql"
	defaultLockFile   = "LOCK"
	defaultCacheSize  = 10_000
	defaultListenAddr = "127.0.0.1:1010"
)

// Config defines the top level configuration of the ledger.
type Config struct {
	Preset string `mapstructure:"preset"`
	// DataDir holds the issuer key, the journal and the lock file.
	DataDir string `mapstructure:"data-dir"`
	// IssuerKey is a path to the hex encoded private key of the issuer. Relative paths
	// are resolved against DataDir. The key is created if it doesn't exist.
	IssuerKey string `mapstructure:"issuer-key"`
	// KeysDir holds private keys of the senders referenced by requests.
	KeysDir string `mapstructure:"keys-dir"`
	// SigningPrefix is mixed into every signed message, so that signatures
	// can't be replayed on a ledger with a different prefix.
	SigningPrefix string `mapstructure:"signing-prefix"`

	Address *types.Config `mapstructure:"address"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Journal JournalConfig `mapstructure:"journal"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggerConfig  `mapstructure:"logging"`
}

// LedgerConfig configures the engine.
type LedgerConfig struct {
	InitialBalance uint64 `mapstructure:"initial-balance"`
	// VerifyCacheSize is the number of verified signatures kept in memory.
	// Zero disables the cache.
	VerifyCacheSize int `mapstructure:"verify-cache-size"`
}

// JournalConfig configures the sqlite archive of applied transactions.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DB      string `mapstructure:"db"`
	// Connections is the size of the sqlite connection pool.
	Connections int `mapstructure:"connections"`
}

// MetricsConfig configures prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	// Push is used only if URL is not empty.
	Push metrics.PushConfig `mapstructure:"push"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:   defaultDataDir,
		IssuerKey: defaultIssuerKey,
		KeysDir:   defaultKeysDir,
		Address:   types.DefaultAddressConfig(),
		Ledger: LedgerConfig{
			InitialBalance:  ledger.DefaultInitialBalance,
			VerifyCacheSize: defaultCacheSize,
		},
		Journal: JournalConfig{
			Enabled:     true,
			DB:          defaultJournalDB,
			Connections: 4,
		},
		Metrics: MetricsConfig{
			Listen: defaultListenAddr,
			Push: metrics.PushConfig{
				Period: time.Minute,
			},
		},
		Logging: DefaultLoggingConfig(),
	}
}

// DefaultTestConfig returns the configuration used by tests.
func DefaultTestConfig() Config {
	conf := DefaultConfig()
	conf.Address = types.DefaultTestAddressConfig()
	conf.Ledger.VerifyCacheSize = 100
	conf.Journal.Connections = 1
	return conf
}

// Path resolves p against the data directory.
func (cfg *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.DataDir, p)
}

// LockFile is locked while the ledger runs.
func (cfg *Config) LockFile() string {
	return cfg.Path(defaultLockFile)
}

// Validate checks values that can't be checked while decoding.
func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data-dir is empty")
	}
	if cfg.IssuerKey == "" {
		return fmt.Errorf("issuer-key is empty")
	}
	if cfg.Address == nil || cfg.Address.NetworkHRP == "" {
		return fmt.Errorf("address.network-hrp is empty")
	}
	if cfg.Ledger.VerifyCacheSize < 0 {
		return fmt.Errorf("ledger.verify-cache-size is negative: %d", cfg.Ledger.VerifyCacheSize)
	}
	if cfg.Journal.Enabled && cfg.Journal.Connections < 1 {
		return fmt.Errorf("journal.connections must be positive: %d", cfg.Journal.Connections)
	}
	if cfg.Metrics.Push.URL != "" && cfg.Metrics.Push.Period <= 0 {
		return fmt.Errorf("metrics.push.period must be positive: %s", cfg.Metrics.Push.Period)
	}
	return nil
}

// LoadConfig reads the config file into vip. Defaults are used if fileLocation is empty.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		return nil
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}
