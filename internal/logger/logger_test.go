package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToDebugOutsideRelease(t *testing.T) {
	l := New(io.Discard)

	assert.Equal(t, logrus.DebugLevel, l.Level)
	assert.IsType(t, new(logrus.TextFormatter), l.Formatter)
}

func TestNewHonorsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	l := New(io.Discard)
	assert.Equal(t, logrus.WarnLevel, l.Level)
}

func TestNewIgnoresBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	l := New(io.Discard)
	assert.Equal(t, logrus.DebugLevel, l.Level)
}
