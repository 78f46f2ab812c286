package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/logrusorgru/aurora"
)

const barWidth = 30

// WriteConsole prints the dashboard as text bars. Colors follow the desktop
// window: CPU cyan (red when flagged), memory yellow, storage green.
func WriteConsole(w io.Writer, d Dashboard, au aurora.Aurora) error {
	for _, m := range d.Meters() {
		bar := Bar(m.Percent, barWidth)
		if _, err := fmt.Fprintf(w, "%-14s [%s] %7s\n",
			au.Bold(m.Title), colorize(au, m, bar), m.Label); err != nil {
			return err
		}
		if m.Caption != "" {
			if _, err := fmt.Fprintf(w, "%-14s %s\n", "", au.Faint(m.Caption)); err != nil {
				return err
			}
		}
	}
	return nil
}

func colorize(au aurora.Aurora, m Meter, s string) aurora.Value {
	switch {
	case m.Warning:
		return au.Red(s)
	case m.Kind == KindMemory:
		return au.Yellow(s)
	case m.Kind == KindStorage:
		return au.Green(s)
	default:
		return au.Cyan(s)
	}
}

// Bar renders percent as a fixed-width bar of '#' and '-'.
func Bar(percent float64, width int) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = max(0, min(width, filled))
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}
