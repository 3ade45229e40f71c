package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":      logrus.DebugLevel,
		"dev":        logrus.DebugLevel,
		"info":       logrus.InfoLevel,
		"warning":    logrus.WarnLevel,
		"production": logrus.ErrorLevel,
		"nonsense":   logrus.WarnLevel,
	}
	for env, want := range tests {
		t.Setenv("LOG_LEVEL", env)
		assert.Equal(t, want, levelFromEnv(), env)
	}
}

func TestNewWritesToOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	var out bytes.Buffer
	log := New(&out)
	log.WithField("port", "COM3").Info("Opened port")
	log.Debug("hidden")

	assert.Contains(t, out.String(), `msg="Opened port" port=COM3`)
	assert.NotContains(t, out.String(), "hidden")
}
