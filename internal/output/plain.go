package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/glimt/internal/model"
)

// PlainFormatter formats screens as human-readable lines.
type PlainFormatter struct {
	idStyle      lipgloss.Style
	primaryStyle lipgloss.Style
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{
		idStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		primaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
	}
}

// Format writes one line per screen: its ID, X geometry and a primary marker.
func (f *PlainFormatter) Format(w io.Writer, screens []model.Screen) error {
	if len(screens) == 0 {
		_, err := fmt.Fprintln(w, "no screens found")
		return err
	}

	for _, s := range screens {
		line := f.idStyle.Render(s.ID) + "  " + geometryString(s.Bounds)
		if s.Primary {
			line += "  " + f.primaryStyle.Render("primary")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
