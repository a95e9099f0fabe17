package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	for _, enc := range []string{"console", "json"} {
		log := NewLogger(Log{Level: zapcore.WarnLevel, Encoding: enc}, "test")
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel), enc)
		assert.True(t, log.Core().Enabled(zapcore.ErrorLevel), enc)
	}
}
