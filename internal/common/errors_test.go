package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("Could not save history", inner)

	assert.Equal(t, "Could not save history: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Could not save history", UserMessage(err))

	bare := NewUserError("Nothing to do", nil)
	assert.Equal(t, "Nothing to do", bare.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		contains string
	}{
		{
			name:     "invalid input",
			err:      fmt.Errorf("classify: %w", ErrInvalidInput),
			contains: "valid SMS message",
		},
		{
			name:     "model unavailable",
			err:      fmt.Errorf("fallback: %w", ErrModelUnavailable),
			contains: "not loaded",
		},
		{
			name:     "vectorization mismatch",
			err:      ErrVectorizationMismatch,
			contains: "same training run",
		},
		{
			name:     "other errors pass through",
			err:      errors.New("boom"),
			contains: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, UserMessage(tt.err), tt.contains)
		})
	}
}

func TestCompilePattern(t *testing.T) {
	re, err := CompilePattern(`\bcall\s+now\b`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("please call now"))

	_, err = CompilePattern(`[unterminated`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPatternCompilation)
	assert.Contains(t, err.Error(), "[unterminated")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "via", "rules")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"via":"rules"`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
