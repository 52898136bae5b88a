// Package logging builds the zap logger used across the CLI.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console zap.Logger writing to stderr at the given level.
// When debug is true the level is forced to debug regardless of level.
func New(level string, debug bool) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := zapcore.ErrorLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.ErrorLevel
	}
	if debug {
		lvl = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		lvl,
	)

	return zap.New(core)
}
