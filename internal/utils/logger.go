package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// standardErrorPath routes log output away from the rendered tree on stdout.
const standardErrorPath = "stderr"

// NewApplicationLogger constructs a zap logger configured for human-readable console output on stderr.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.OutputPaths = []string{standardErrorPath}
	config.ErrorOutputPaths = []string{standardErrorPath}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}
