package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeConfig(tb testing.TB, name, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), viper.New())
		require.ErrorContains(t, err, "failed to read config file")
	})
	t.Run("empty location", func(t *testing.T) {
		vip := viper.New()
		require.NoError(t, LoadConfig("", vip))
		conf := DefaultConfig()
		require.NoError(t, Decode(vip, &conf))
		require.Equal(t, DefaultConfig(), conf)
	})
	t.Run("toml", func(t *testing.T) {
		path := writeConfig(t, "config.toml", `
data-dir = "/var/ledger"
signing-prefix = "net"

[address]
network-hrp = "abc"

[ledger]
initial-balance = 5
verify-cache-size = 0

[metrics]
enabled = true
listen = "0.0.0.0:9090"
[metrics.push]
url = "http://gateway:9091"
period = "15s"

[logging]
log-encoder = "json"
ledger = "debug"
`)
		vip := viper.New()
		require.NoError(t, LoadConfig(path, vip))
		conf := DefaultConfig()
		require.NoError(t, Decode(vip, &conf))
		require.NoError(t, conf.Validate())

		require.Equal(t, "/var/ledger", conf.DataDir)
		require.Equal(t, "net", conf.SigningPrefix)
		require.Equal(t, "abc", conf.Address.NetworkHRP)
		require.EqualValues(t, 5, conf.Ledger.InitialBalance)
		require.Zero(t, conf.Ledger.VerifyCacheSize)
		require.True(t, conf.Metrics.Enabled)
		require.Equal(t, "0.0.0.0:9090", conf.Metrics.Listen)
		require.Equal(t, 15*time.Second, conf.Metrics.Push.Period)
		require.Equal(t, "json", conf.Logging.Encoder)
		require.Equal(t, "debug", conf.Logging.LedgerLevel)
		// untouched values keep defaults
		require.True(t, conf.Journal.Enabled)
		require.Equal(t, defaultIssuerKey, conf.IssuerKey)
		require.Equal(t, "/var/ledger/issuer.key", conf.Path(conf.IssuerKey))
	})
	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "ledger:\n  initial-balanse: 10\n")
		vip := viper.New()
		require.NoError(t, LoadConfig(path, vip))
		conf := DefaultConfig()
		require.ErrorContains(t, Decode(vip, &conf), "initial-balanse")
	})
}

func TestPath(t *testing.T) {
	conf := DefaultConfig()
	conf.DataDir = "/data"
	require.Equal(t, "/data/journal.sql", conf.Path("journal.sql"))
	require.Equal(t, "/abs/journal.sql", conf.Path("/abs/journal.sql"))
	require.Equal(t, "/data/LOCK", conf.LockFile())
	require.Empty(t, conf.Path(""))
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		desc   string
		modify func(*Config)
		err    string
	}{
		{"valid", func(*Config) {}, ""},
		{"no data dir", func(c *Config) { c.DataDir = "" }, "data-dir"},
		{"no issuer key", func(c *Config) { c.IssuerKey = "" }, "issuer-key"},
		{"no hrp", func(c *Config) { c.Address.NetworkHRP = "" }, "network-hrp"},
		{"negative cache", func(c *Config) { c.Ledger.VerifyCacheSize = -1 }, "verify-cache-size"},
		{"no connections", func(c *Config) { c.Journal.Connections = 0 }, "journal.connections"},
		{"push without period", func(c *Config) {
			c.Metrics.Push.URL = "http://localhost"
			c.Metrics.Push.Period = 0
		}, "metrics.push.period"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			conf := DefaultTestConfig()
			tc.modify(&conf)
			err := conf.Validate()
			if tc.err == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tc.err)
			}
		})
	}
}
