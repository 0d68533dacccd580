// Package scroll advances a scrollable viewport at a fractional
// pixels-per-frame rate. The host calls Tick once per display refresh and
// keeps scheduling ticks for as long as Tick returns true.
package scroll

import (
	"math"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// Viewport is the scrollable surface the engine moves. Offsets are in
// pixels; SetOffset may clamp to [0, MaxOffset].
type Viewport interface {
	Offset() int
	SetOffset(px int)
	MaxOffset() int
}

// State is the engine's playback state.
type State int

// Engine states.
const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Engine is a two-state machine (stopped, running) carrying the fractional
// pixels owed between ticks in an accumulator. It is not safe for concurrent
// use; the host's event loop owns it.
type Engine struct {
	vp       Viewport
	state    State
	speed    float64
	acc      float64
	advanced int
}

// New returns a stopped engine on vp. A speed outside the allowed range is
// replaced by types.DefaultScrollSpeed. vp may be nil and mounted later.
func New(vp Viewport, speed float64) *Engine {
	if !types.ValidScrollSpeed(speed) {
		speed = types.DefaultScrollSpeed
	}
	return &Engine{vp: vp, speed: speed}
}

// Tick performs one frame step and reports whether the host should schedule
// another. A stopped or unmounted engine does nothing and returns false.
func (e *Engine) Tick() bool {
	if e.state != Running {
		return false
	}
	if e.vp == nil {
		e.stop()
		return false
	}

	e.acc += e.speed
	if e.acc >= 1 {
		whole := math.Floor(e.acc)
		e.vp.SetOffset(e.vp.Offset() + int(whole))
		e.acc -= whole
		e.advanced += int(whole)
	}
	return true
}

// Play moves stopped to running. It reports whether a transition happened,
// in which case the host starts scheduling ticks.
func (e *Engine) Play() bool {
	if e.state == Running {
		return false
	}
	e.state = Running
	return true
}

// Pause moves running to stopped and clears the accumulator.
func (e *Engine) Pause() {
	if e.state == Running {
		e.stop()
	}
}

// Toggle flips between running and stopped and returns the new state.
func (e *Engine) Toggle() State {
	if e.state == Running {
		e.stop()
	} else {
		e.state = Running
	}
	return e.state
}

// stop always clears the accumulator so a stale carry cannot cause a jump
// when playback resumes at another speed.
func (e *Engine) stop() {
	e.state = Stopped
	e.acc = 0
}

// SetSpeed changes the rate. Values outside [0.1, 5.0] are rejected with
// types.ErrSpeedOutOfRange. The accumulator is kept.
func (e *Engine) SetSpeed(speed float64) error {
	if !types.ValidScrollSpeed(speed) {
		return types.ErrSpeedOutOfRange
	}
	e.speed = speed
	return nil
}

// JumpToStart scrolls to offset 0.
func (e *Engine) JumpToStart() {
	if e.vp == nil {
		return
	}
	e.vp.SetOffset(0)
}

// JumpToEnd scrolls to the viewport's maximum offset.
func (e *Engine) JumpToEnd() {
	if e.vp == nil {
		return
	}
	e.vp.SetOffset(e.vp.MaxOffset())
}

// Mount attaches a viewport and resets the tick counter.
func (e *Engine) Mount(vp Viewport) {
	e.vp = vp
	e.advanced = 0
}

// Unmount detaches the viewport (teardown) and stops the engine.
func (e *Engine) Unmount() {
	e.vp = nil
	e.stop()
}

// Mounted reports whether a viewport is attached.
func (e *Engine) Mounted() bool { return e.vp != nil }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Running reports whether the engine is running.
func (e *Engine) Running() bool { return e.state == Running }

// Speed returns the rate in pixels per frame.
func (e *Engine) Speed() float64 { return e.speed }

// Accumulator returns the fractional pixels owed, always in [0, 1) after a tick.
func (e *Engine) Accumulator() float64 { return e.acc }

// Advanced returns the pixels requested by ticks since the last Mount.
func (e *Engine) Advanced() int { return e.advanced }

// AtEnd reports whether the viewport sits at its maximum offset.
func (e *Engine) AtEnd() bool {
	if e.vp == nil {
		return false
	}
	return e.vp.Offset() >= e.vp.MaxOffset()
}
