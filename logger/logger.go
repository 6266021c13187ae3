// Package logger builds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger.
// Debug mode keeps JSON output but lowers the level to debug.
func New(debug bool) (*zap.Logger, error) {
	return build(debug, zap.NewProductionConfig())
}

// NewNop returns a logger for tests and tools that discard output.
func NewNop() *zap.Logger { return zap.NewNop() }

func build(debug bool, cfg zap.Config) (*zap.Logger, error) {
	cfg.Encoding = "json"
	cfg.Level = zap.NewAtomicLevelAt(level(debug))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": "gymapi"}
	return cfg.Build()
}

func level(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}
