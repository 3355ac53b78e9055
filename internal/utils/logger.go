package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	loggerEncoding   = "console"
	loggerMessageKey = "message"
	loggerSink       = "stderr"
)

// NewApplicationLogger returns the message-only console logger tokenum
// reports diagnostics with. It writes to stderr so stdout carries nothing
// but the report. level may be changed after construction, which is how
// --verbose turns on the skipped-entry lines.
func NewApplicationLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	config := zap.Config{
		Level:             level,
		Encoding:          loggerEncoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     loggerMessageKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{loggerSink},
		ErrorOutputPaths: []string{loggerSink},
	}
	return config.Build()
}
