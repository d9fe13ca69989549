package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"", logger.LevelInfo, false},
		{"WARN", logger.LevelWarn, false},
		{"error", logger.LevelError, false},
		{"loud", logger.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestInit(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	require.NoError(t, logger.Init(logger.Config{Level: logger.LevelWarn, Format: "json", Output: &buf}))
	logger.LogUnit("a.d.ts", 3, 0)
	assert.Empty(t, buf.String(), "info is below the configured level")

	logger.LogUnitFailed("a.d.ts", errors.New("boom"))
	assert.Contains(t, buf.String(), `"path":"a.d.ts"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.Error(t, logger.Init(logger.Config{Format: "xml", Output: &buf}))
}

func TestDisplay(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	d := diag.Diagnostic{
		Kind:    diag.KindType,
		Context: diag.Context{Unit: "a.d.ts", Decl: "f", Line: 2},
		Message: "literal type 1 is not supported",
	}
	logger.PrintDiagnostic(&buf, d)
	assert.Contains(t, buf.String(), d.Location())
	assert.Contains(t, buf.String(), d.Message)

	buf.Reset()
	logger.PrintError(&buf, "Unsupported", errors.New("enum"))
	assert.Contains(t, buf.String(), "Unsupported")
	assert.Contains(t, buf.String(), "enum")

	buf.Reset()
	logger.PrintSummary(&buf, 3, 1, 0)
	assert.Contains(t, buf.String(), "Oh no!")
	assert.Contains(t, buf.String(), "3 units, 1 failure, 0 warnings")
}
