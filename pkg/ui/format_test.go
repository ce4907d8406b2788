package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/targetenv/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "unknown", ui.Format(999).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  ui.Format
	}{
		{"auto", ui.FormatAuto},
		{"", ui.FormatAuto},
		{"term", ui.FormatTerminal},
		{"terminal", ui.FormatTerminal},
		{"TERM", ui.FormatTerminal},
		{"text", ui.FormatText},
		{"plain", ui.FormatText},
		{" Json ", ui.FormatJSON},
	}
	for _, tt := range tests {
		t.Run("parse_"+tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFormatFlagValue(t *testing.T) {
	var f ui.Format
	require.NoError(t, f.Set("json"))
	assert.Equal(t, ui.FormatJSON, f)
	assert.Equal(t, "format", f.Type())

	assert.Error(t, f.Set("yaml"))
	assert.Equal(t, ui.FormatJSON, f, "failed Set keeps the previous value")
}

func TestDetectFormat(t *testing.T) {
	t.Run("no_color_forces_text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular_file_is_text", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})

	t.Run("buffer_is_text", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
	})
}
