package player

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/prompter/internal/session"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// lineHeight returns the pixel height of one rendered row at fontSize.
func lineHeight(fontSize int) int {
	return fontSize * 3 / 2
}

// wrapWidth returns the text column width for a terminal cols wide. The
// minimum font size uses the full width; larger sizes fit fewer glyphs.
func wrapWidth(cols, fontSize int) int {
	if cols <= 0 {
		return 1
	}
	if fontSize <= 0 {
		fontSize = types.DefaultFontSize
	}
	return min(cols, max(1, cols*types.MinFontSize/fontSize))
}

func position(a session.Alignment) lipgloss.Position {
	switch a {
	case session.AlignCenter:
		return lipgloss.Center
	case session.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// layout wraps content to the session's text column, aligns it inside cols
// and applies horizontal mirroring. Every returned line is padded to cols so
// a horizontal flip mirrors the whole row, not just the text. Vertical
// mirroring is applied to the visible window at render time, never here.
func layout(content string, cols int, sess session.Session) []string {
	cols = max(cols, 1)
	pos := position(sess.Alignment())

	block := lipgloss.NewStyle().
		Width(wrapWidth(cols, sess.FontSize())).
		Align(pos).
		Render(content)
	block = lipgloss.PlaceHorizontal(cols, pos, block)

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if pad := cols - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		if sess.MirrorHorizontal() {
			line = reverseRunes(line)
		}
		lines[i] = line
	}
	return lines
}

// padRows surrounds lines with blank rows so the first line can start on the
// reading line of a viewport height rows tall and the last line can scroll
// up to it.
func padRows(lines []string, cols, height int) []string {
	top := height / 2
	bottom := max(0, height-1-top)
	blank := strings.Repeat(" ", max(cols, 1))

	rows := make([]string, 0, top+len(lines)+bottom)
	for range top {
		rows = append(rows, blank)
	}
	rows = append(rows, lines...)
	for range bottom {
		rows = append(rows, blank)
	}
	return rows
}

func reverseRunes(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}
