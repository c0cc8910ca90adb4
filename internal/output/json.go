package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/glimt/internal/model"
)

// JSONFormatter formats screens as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes screens as an indented JSON array.
func (f *JSONFormatter) Format(w io.Writer, screens []model.Screen) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows(screens))
}
