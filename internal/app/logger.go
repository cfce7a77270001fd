package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the diagnostics logger: JSON to stderr at warn level, or
// debug when verbose. Quiet returns a no-op logger.
func NewLogger(quiet, verbose bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.DisableCaller = true
	zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zapConfig.Level.SetLevel(zapcore.DebugLevel)
	}
	log, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("newLogger: %w", err)
	}
	return log, nil
}
