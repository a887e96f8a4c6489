package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// UI renders surf's human views: result tables, the instance summary and
// errors. Styling is applied only when out is a terminal and NO_COLOR is
// unset, so piped output stays plain.
type UI struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	color  bool
	styles palette
}

// palette holds every style the views use, built once against out.
type palette struct {
	header   lipgloss.Style
	label    lipgloss.Style
	faint    lipgloss.Style
	errTag   lipgloss.Style
	full     lipgloss.Style
	degraded lipgloss.Style
	method   lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		label:    r.NewStyle().Bold(true),
		faint:    r.NewStyle().Faint(true),
		errTag:   r.NewStyle().Foreground(lipgloss.Color("1")),
		full:     r.NewStyle().Foreground(lipgloss.Color("2")),
		degraded: r.NewStyle().Foreground(lipgloss.Color("3")),
		method:   r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// New creates a UI that writes views to out and errors to errOut.
// Terminal detection is performed on out.
func New(out, errOut io.Writer) *UI {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(f.Fd())
	}
	return &UI{
		out:    out,
		errOut: errOut,
		isTTY:  tty,
		color:  tty && os.Getenv("NO_COLOR") == "",
		styles: newPalette(lipgloss.NewRenderer(out)),
	}
}

// IsTTY reports whether out is a terminal.
func (u *UI) IsTTY() bool {
	return u.isTTY
}

// paint renders text with s, or returns it untouched when color is off.
func (u *UI) paint(s lipgloss.Style, text string) string {
	if !u.color {
		return text
	}
	return s.Render(text)
}
