package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/glimt/internal/model"
)

func testScreens() []model.Screen {
	return []model.Screen{
		{
			ID:      "screen-0",
			Bounds:  model.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			Primary: true,
		},
		{
			ID:     "screen-1",
			Bounds: model.Rect{X: 1920, Y: -64, Width: 1280, Height: 1024},
		},
	}
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter()
	err := formatter.Format(&buf, testScreens())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "screen-0")
	assert.Contains(t, lines[0], "1920x1080+0+0")
	assert.Contains(t, lines[0], "primary")

	assert.Contains(t, lines[1], "screen-1")
	assert.Contains(t, lines[1], "1280x1024+1920-64")
	assert.NotContains(t, lines[1], "primary")
}

func TestPlainFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := NewPlainFormatter().Format(&buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no screens found")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewJSONFormatter().Format(&buf, testScreens())
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)

	assert.Equal(t, "screen-0", parsed[0]["id"])
	assert.Equal(t, float64(1920), parsed[0]["width"])
	assert.Equal(t, true, parsed[0]["primary"])

	assert.Equal(t, "screen-1", parsed[1]["id"])
	assert.Equal(t, float64(-64), parsed[1]["y"])
	assert.Equal(t, false, parsed[1]["primary"])
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewYAMLFormatter().Format(&buf, testScreens())
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)

	assert.Equal(t, "screen-0", parsed[0]["id"])
	assert.Equal(t, 1080, parsed[0]["height"])
	assert.Equal(t, true, parsed[0]["primary"])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    FormatType
		wantErr bool
	}{
		{"", FormatPlain, false},
		{"plain", FormatPlain, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
}
