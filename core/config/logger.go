package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logger writing to stderr at the configured level.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case FormatJSON:
		zc = zap.NewProductionConfig()
	case FormatConsole, "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%w: unknown log.format %q", ErrInvalidConfig, cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
