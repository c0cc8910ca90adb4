package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/glimt/internal/model"
)

// YAMLFormatter formats screens as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes screens as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, screens []model.Screen) error {
	data, err := yaml.Marshal(rows(screens))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
