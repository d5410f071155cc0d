// Package log builds the zap loggers used by the ledger components.
package log

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ConsoleEncoder writes plain text.
	ConsoleEncoder = "console"
	// JSONEncoder writes one json object per line.
	JSONEncoder = "json"
)

// NewEncoder returns the encoder for kind.
func NewEncoder(kind string) (zapcore.Encoder, error) {
	switch kind {
	case ConsoleEncoder:
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoder:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", kind)
}

// NewWithLevel creates a logger that writes to w with a fixed level.
func NewWithLevel(w io.Writer, level zap.AtomicLevel, encoder zapcore.Encoder) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}

// Modules hands out named child loggers with independent levels.
type Modules struct {
	root   *zap.Logger
	levels map[string]zap.AtomicLevel
}

// NewModules wraps the root logger.
func NewModules(root *zap.Logger) *Modules {
	return &Modules{root: root, levels: map[string]zap.AtomicLevel{}}
}

// Named returns a logger for module that logs at level and above.
// Level must be a valid zapcore level name.
func (m *Modules) Named(module, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("level for %s: %w", module, err)
	}
	m.levels[module] = lvl
	return m.root.Named(module).WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, level: lvl}
	})), nil
}

// SetLevel changes the level of a module created with Named.
func (m *Modules) SetLevel(module string, level zapcore.Level) error {
	lvl, ok := m.levels[module]
	if !ok {
		return fmt.Errorf("unknown module %s", module)
	}
	lvl.SetLevel(level)
	return nil
}

// levelCore restricts the wrapped core to a level that can be raised above the root level.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *levelCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(entry.Level) {
		return checked
	}
	return c.Core.Check(entry, checked)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}
