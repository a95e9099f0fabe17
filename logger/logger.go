package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log configures the process logger.
type Log struct {
	Level    zapcore.Level `envconfig:"LIBRARY_LOG_LEVEL" default:"warn" json:"level"`
	Encoding string        `envconfig:"LIBRARY_LOG_ENCODING" default:"console" json:"encoding"`
}

// NewLogger builds a zap logger writing to stderr, so log lines never mix
// with shell output on stdout.
func NewLogger(cfg Log, service string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	switch cfg.Encoding {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(cfg.Level))
	return zap.New(core, zap.AddCaller()).Named(service)
}
