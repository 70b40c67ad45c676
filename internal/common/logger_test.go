package common

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Formats(t *testing.T) {
	require.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	require.NoError(t, SetupLogger(slog.LevelInfo, "json"))
	require.NoError(t, SetupLogger(slog.LevelInfo, ""))
}

func TestSetupLogger_UnknownFormat(t *testing.T) {
	err := SetupLogger(slog.LevelInfo, "yaml")

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "yaml")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input: %q", tt.input)
	}
}
