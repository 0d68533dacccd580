package player

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// surface adapts a row-based bubbles viewport to the pixel offsets the scroll
// engine works in. One terminal row stands for lineHeight pixels, so the
// engine's fractional rate survives the mapping: the pixel offset is kept
// here and only its whole rows reach the viewport.
type surface struct {
	view       *viewport.Model
	lineHeight int
	offset     int
}

func newSurface(view *viewport.Model, lineHeight int) *surface {
	return &surface{view: view, lineHeight: max(1, lineHeight)}
}

// Offset returns the scroll position in pixels.
func (s *surface) Offset() int { return s.offset }

// SetOffset moves to px, clamped to [0, MaxOffset].
func (s *surface) SetOffset(px int) {
	s.offset = min(max(px, 0), s.MaxOffset())
	s.view.SetYOffset(s.offset / s.lineHeight)
}

// MaxOffset returns the pixel offset at which the last row is at the bottom
// of the viewport.
func (s *surface) MaxOffset() int {
	rows := max(0, s.view.TotalLineCount()-s.view.Height)
	return rows * s.lineHeight
}

// rescale switches to a new line height keeping the same row position.
func (s *surface) rescale(lineHeight int) {
	lineHeight = max(1, lineHeight)
	if lineHeight == s.lineHeight {
		return
	}
	px := s.offset * lineHeight / s.lineHeight
	s.lineHeight = lineHeight
	s.SetOffset(px)
}

// row returns the top visible row. With the player's top padding this is
// also the script row on the reading line.
func (s *surface) row() int { return s.offset / s.lineHeight }
