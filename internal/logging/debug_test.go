package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"should be off when empty", "", false},
		{"should be on for any value", "1", true},
		{"should be on for true", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POMO_DEBUG", tt.value)
			assert.Equal(t, tt.want, DebugEnabled())
		})
	}
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	std := log.StandardLogger()
	prev := std.Out
	std.SetOutput(&buf)
	defer std.SetOutput(prev)

	t.Setenv("POMO_DEBUG", "")
	Debugf("hidden %s", "message")
	Debugln("hidden line")
	assert.Empty(t, buf.String())

	t.Setenv("POMO_DEBUG", "1")
	Debugf("shown %s", "message")
	Debugln("shown line")
	assert.Contains(t, buf.String(), "shown message")
	assert.Contains(t, buf.String(), "shown line")
}

func TestNew(t *testing.T) {
	t.Setenv("POMO_DEBUG", "")

	t.Run("should log json in production", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithOutput(Options{Level: "info", Production: true}, &buf)

		logger.WithField("user_id", "u1").Info("hello")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "u1", entry["user_id"])
		assert.Equal(t, log.InfoLevel, logger.GetLevel())
	})

	t.Run("should honour level and debug flag", func(t *testing.T) {
		opts := Options{Level: "warn"}
		logger := NewWithOutput(opts, &bytes.Buffer{})
		assert.Equal(t, log.WarnLevel, logger.GetLevel())
		_, isText := logger.Formatter.(*log.TextFormatter)
		assert.True(t, isText)

		opts.Debug = true
		assert.Equal(t, log.DebugLevel, NewWithOutput(opts, &bytes.Buffer{}).GetLevel())
	})

	t.Run("should fall back to info on a bad level", func(t *testing.T) {
		assert.Equal(t, log.InfoLevel, NewWithOutput(Options{Level: "loud"}, &bytes.Buffer{}).GetLevel())
	})
}
