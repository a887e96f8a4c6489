package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fgrehm/surf/internal/catalog"
)

const columnGap = "  "

// Header prints "==> msg".
func (u *UI) Header(msg string) {
	u.println(u.paint(u.styles.header, "==> "+msg))
}

// Keyval prints "  key   value" with the key padded to a fixed width.
func (u *UI) Keyval(key, value string) {
	u.printf("  %s%s\n", u.paint(u.styles.label, fmt.Sprintf("%-12s", key)), value)
}

// Dim prints msg faint.
func (u *UI) Dim(msg string) {
	u.println(u.paint(u.styles.faint, msg))
}

// Error prints "error: msg" to errOut. Only the tag is styled, so multi-line
// messages are written as-is.
func (u *UI) Error(msg string) {
	_, _ = fmt.Fprintf(u.errOut, "%s %s\n", u.paint(u.styles.errTag, "error:"), msg)
}

// StateColor returns the state's name, green when every fetch completed and
// yellow otherwise.
func (u *UI) StateColor(state catalog.State) string {
	if state == catalog.StateFull {
		return u.paint(u.styles.full, state.String())
	}
	return u.paint(u.styles.degraded, state.String())
}

// Table prints rows under bold headers with columns aligned on their
// display width, so styled or non-ASCII cells line up.
func (u *UI) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	u.println(u.paint(u.styles.label, joinRow(headers, widths)))
	for _, row := range rows {
		u.println(joinRow(row, widths))
	}
}

// joinRow pads each cell to its column width. The last cell and cells past
// the known columns are not padded.
func joinRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(cell)
		if i < len(widths) && i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
	}
	return b.String()
}

func (u *UI) println(msg string) {
	_, _ = fmt.Fprintln(u.out, msg)
}

func (u *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(u.out, format, args...)
}
