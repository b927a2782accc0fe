// Package logger builds the zap logger shared by the relay server and the
// terminal widget.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger logs to stdout.
func NewLogger(debug bool) *zap.Logger {
	return NewWithOutput(debug, zapcore.AddSync(os.Stdout))
}

// NewWithOutput is used by the terminal widget, which keeps stdout for the
// transcript and logs to stderr instead.
func NewWithOutput(debug bool, out zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, level)
	return zap.New(core, zap.AddCaller())
}
