package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

// palette styles the interactive session. A plain palette passes text
// through untouched.
type palette struct {
	enabled bool
	banner  lipgloss.Style
	prompt  lipgloss.Style
	reply   lipgloss.Style
	failure lipgloss.Style
}

// newPalette picks styles for w according to the color mode. Auto enables
// color only when w is a terminal.
func newPalette(w io.Writer, mode string) palette {
	var r *lipgloss.Renderer
	switch mode {
	case types.ColorNever:
		return palette{}
	case types.ColorAlways:
		r = lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(w) {
			return palette{}
		}
		r = lipgloss.NewRenderer(w)
	}

	return palette{
		enabled: true,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		prompt:  r.NewStyle().Foreground(lipgloss.Color("8")),
		reply:   r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint renders s line by line so multi-line replies keep their layout.
func (p palette) paint(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
