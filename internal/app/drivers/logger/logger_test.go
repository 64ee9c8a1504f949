package logger

import (
	"carecapture-service/internal/app/config"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
}

func TestNewLogrusLogger(t *testing.T) {
	t.Run("production uses json", func(t *testing.T) {
		logger := NewLogrusLogger(&config.InternalConfig{App: config.App{Env: "production"}})
		_, ok := logger.Formatter.(*logrus.JSONFormatter)
		assert.True(t, ok)
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	})

	t.Run("development uses text", func(t *testing.T) {
		logger := NewLogrusLogger(&config.InternalConfig{App: config.App{Env: "development"}})
		_, ok := logger.Formatter.(*logrus.TextFormatter)
		assert.True(t, ok)
	})
}

func TestNewZapLogger(t *testing.T) {
	logger := NewZapLogger(
		&config.DriverConfig{Logger: config.Logger{Level: "debug"}},
		&config.InternalConfig{App: config.App{Env: "development", Version: "v1"}},
	)
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}
