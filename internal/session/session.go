// Package session holds the playback presentation settings as one immutable
// value. Every change goes through a named transition that returns a new
// Session, so unrelated toggles never share mutable state.
package session

import (
	"math"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// Alignment is the horizontal text alignment.
type Alignment string

// Supported alignments, in cycle order.
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

var alignmentCycle = []Alignment{AlignLeft, AlignCenter, AlignRight}

// ParseAlignment maps a config value to an Alignment. Unknown values are
// reported with ok false.
func ParseAlignment(s string) (Alignment, bool) {
	for _, a := range alignmentCycle {
		if string(a) == s {
			return a, true
		}
	}
	return AlignLeft, false
}

// Defaults seeds a new Session, usually from configuration.
type Defaults struct {
	FontSize         int
	ScrollSpeed      float64
	DarkMode         bool
	Alignment        Alignment
	MirrorHorizontal bool
	MirrorVertical   bool
}

// Session is the current presentation state. The zero value is not useful;
// build one with New.
type Session struct {
	fontSize    int
	scrollSpeed float64
	darkMode    bool
	align       Alignment
	mirrorH     bool
	mirrorV     bool
}

// New builds a Session from d. Out-of-range values fall back to the
// playback defaults.
func New(d Defaults) Session {
	s := Session{
		fontSize:    types.DefaultFontSize,
		scrollSpeed: types.DefaultScrollSpeed,
		darkMode:    d.DarkMode,
		align:       AlignLeft,
		mirrorH:     d.MirrorHorizontal,
		mirrorV:     d.MirrorVertical,
	}
	if types.ValidFontSize(d.FontSize) {
		s.fontSize = d.FontSize
	}
	if types.ValidScrollSpeed(d.ScrollSpeed) {
		s.scrollSpeed = roundSpeed(d.ScrollSpeed)
	}
	if a, ok := ParseAlignment(string(d.Alignment)); ok {
		s.align = a
	}
	return s
}

// FontSize returns the text size in pixels.
func (s Session) FontSize() int { return s.fontSize }

// ScrollSpeed returns the rate in pixels per frame.
func (s Session) ScrollSpeed() float64 { return s.scrollSpeed }

// DarkMode reports whether the dark theme is active.
func (s Session) DarkMode() bool { return s.darkMode }

// Alignment returns the text alignment.
func (s Session) Alignment() Alignment { return s.align }

// MirrorHorizontal reports whether text is flipped left to right.
func (s Session) MirrorHorizontal() bool { return s.mirrorH }

// MirrorVertical reports whether text is flipped top to bottom.
func (s Session) MirrorVertical() bool { return s.mirrorV }

// WithFontSize sets the font size, clamped to the allowed range.
func (s Session) WithFontSize(v int) Session {
	s.fontSize = min(max(v, types.MinFontSize), types.MaxFontSize)
	return s
}

// LargerText increases the font size by one step.
func (s Session) LargerText() Session {
	return s.WithFontSize(s.fontSize + types.FontSizeStep)
}

// SmallerText decreases the font size by one step.
func (s Session) SmallerText() Session {
	return s.WithFontSize(s.fontSize - types.FontSizeStep)
}

// WithScrollSpeed sets the speed, clamped to the allowed range and rounded
// to the slider step.
func (s Session) WithScrollSpeed(v float64) Session {
	if math.IsNaN(v) {
		return s
	}
	s.scrollSpeed = roundSpeed(math.Min(math.Max(v, types.MinScrollSpeed), types.MaxScrollSpeed))
	return s
}

// Faster increases the speed by one step.
func (s Session) Faster() Session {
	return s.WithScrollSpeed(s.scrollSpeed + types.ScrollSpeedStep)
}

// Slower decreases the speed by one step.
func (s Session) Slower() Session {
	return s.WithScrollSpeed(s.scrollSpeed - types.ScrollSpeedStep)
}

// ToggleDarkMode flips the theme.
func (s Session) ToggleDarkMode() Session {
	s.darkMode = !s.darkMode
	return s
}

// ToggleMirrorHorizontal flips horizontal mirroring.
func (s Session) ToggleMirrorHorizontal() Session {
	s.mirrorH = !s.mirrorH
	return s
}

// ToggleMirrorVertical flips vertical mirroring.
func (s Session) ToggleMirrorVertical() Session {
	s.mirrorV = !s.mirrorV
	return s
}

// WithAlignment sets the alignment; unknown values are ignored.
func (s Session) WithAlignment(a Alignment) Session {
	if parsed, ok := ParseAlignment(string(a)); ok {
		s.align = parsed
	}
	return s
}

// CycleAlignment advances left, center, right, left.
func (s Session) CycleAlignment() Session {
	for i, a := range alignmentCycle {
		if a == s.align {
			s.align = alignmentCycle[(i+1)%len(alignmentCycle)]
			return s
		}
	}
	s.align = AlignLeft
	return s
}

// ApplyScript adopts the script's saved overrides. Absent overrides keep
// the current values.
func (s Session) ApplyScript(script types.Script) Session {
	if script.FontSize != nil && types.ValidFontSize(*script.FontSize) {
		s.fontSize = *script.FontSize
	}
	if script.ScrollSpeed != nil && types.ValidScrollSpeed(*script.ScrollSpeed) {
		s.scrollSpeed = roundSpeed(*script.ScrollSpeed)
	}
	return s
}

// roundSpeed snaps to one decimal so repeated steps do not drift.
func roundSpeed(v float64) float64 {
	return math.Round(v*10) / 10
}
