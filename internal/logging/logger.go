// Package logging provides zap logger helpers shared across the harvester.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the shared logger. It defaults to a no-op logger so packages can log
// safely before InitLogger runs.
var L = zap.NewNop()

// New builds a zap.Logger configured for development or production.
func New(development bool) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build dev logger: %w", err)
		}
		return logger, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build prod logger: %w", err)
	}
	return logger, nil
}

// InitLogger replaces the shared logger. Development output is enabled via
// the CAGEHARVEST_DEBUG environment variable, which is read before Viper is
// initialized so early startup logging is structured too.
func InitLogger() {
	logger, err := New(os.Getenv("CAGEHARVEST_DEBUG") != "")
	if err != nil {
		// Nothing sensible to do without a logger.
		panic(err)
	}
	L = logger
}
