package config

import (
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-ledger/log"
)

const defaultLoggingLevel = zapcore.InfoLevel

// LoggerConfig holds the encoder and the logging level for each module.
type LoggerConfig struct {
	Encoder       string `mapstructure:"log-encoder"`
	LedgerLevel   string `mapstructure:"ledger"`
	JournalLevel  string `mapstructure:"journal"`
	DatabaseLevel string `mapstructure:"database"`
	MetricsLevel  string `mapstructure:"metrics"`
	CLILevel      string `mapstructure:"cli"`
}

// DefaultLoggingConfig returns the default logging configuration.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:       log.ConsoleEncoder,
		LedgerLevel:   defaultLoggingLevel.String(),
		JournalLevel:  defaultLoggingLevel.String(),
		DatabaseLevel: zapcore.WarnLevel.String(),
		MetricsLevel:  defaultLoggingLevel.String(),
		CLILevel:      defaultLoggingLevel.String(),
	}
}
