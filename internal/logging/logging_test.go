package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level string
		dev   bool
		want  zapcore.Level
	}{
		{"", false, zapcore.InfoLevel},
		{"debug", false, zapcore.DebugLevel},
		{"WARN", true, zapcore.WarnLevel},
		{"error", true, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		log, err := New(tt.level, tt.dev)
		require.NoError(t, err, tt.level)

		assert.True(t, log.Core().Enabled(tt.want), tt.level)
		assert.False(t, log.Core().Enabled(tt.want-1), tt.level)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}
