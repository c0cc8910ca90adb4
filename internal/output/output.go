// Package output provides output formatters for screen listings.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/glimt/internal/model"
)

// Formatter formats screens for output.
type Formatter interface {
	// Format writes the formatted screen list to the writer.
	Format(w io.Writer, screens []model.Screen) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormat validates a --format flag value. Empty means plain.
func ParseFormat(s string) (FormatType, error) {
	switch FormatType(s) {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatJSON, FormatYAML:
		return FormatType(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want plain, json or yaml)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter()
	}
}

// screenRow is the flat wire shape used by the json and yaml formatters.
type screenRow struct {
	ID      string `json:"id" yaml:"id"`
	X       int    `json:"x" yaml:"x"`
	Y       int    `json:"y" yaml:"y"`
	Width   int    `json:"width" yaml:"width"`
	Height  int    `json:"height" yaml:"height"`
	Primary bool   `json:"primary" yaml:"primary"`
}

func rows(screens []model.Screen) []screenRow {
	out := make([]screenRow, len(screens))
	for i, s := range screens {
		out[i] = screenRow{
			ID:      s.ID,
			X:       s.Bounds.X,
			Y:       s.Bounds.Y,
			Width:   s.Bounds.Width,
			Height:  s.Bounds.Height,
			Primary: s.Primary,
		}
	}
	return out
}

// geometryString renders bounds in X geometry form, e.g. "1920x1080+0+0".
func geometryString(b model.Rect) string {
	return fmt.Sprintf("%dx%d%+d%+d", b.Width, b.Height, b.X, b.Y)
}
