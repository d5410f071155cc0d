// Package logtest creates loggers for tests.
package logtest

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const testLogLevel = "TEST_LOG_LEVEL"

// New creates a logger that writes with testing.TB.Log if TEST_LOG_LEVEL is set
// or a level is passed explicitly. Otherwise the logger is silent.
func New(tb testing.TB, overwrite ...zapcore.Level) *zap.Logger {
	var level zapcore.Level
	if len(overwrite) > 0 {
		level = overwrite[0]
	} else {
		lvl := os.Getenv(testLogLevel)
		if len(lvl) == 0 {
			return zap.NewNop()
		}
		if err := level.Set(lvl); err != nil {
			panic(err)
		}
	}
	return zaptest.NewLogger(tb, zaptest.Level(level))
}
