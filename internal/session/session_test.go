package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

func defaults() Defaults {
	return Defaults{
		FontSize:    types.DefaultFontSize,
		ScrollSpeed: types.DefaultScrollSpeed,
		DarkMode:    true,
		Alignment:   AlignLeft,
	}
}

func TestNewFallsBackOnInvalidDefaults(t *testing.T) {
	s := New(Defaults{FontSize: 3, ScrollSpeed: 99, Alignment: "justify"})

	assert.Equal(t, types.DefaultFontSize, s.FontSize())
	assert.Equal(t, types.DefaultScrollSpeed, s.ScrollSpeed())
	assert.Equal(t, AlignLeft, s.Alignment())
}

func TestTransitionsReturnNewValues(t *testing.T) {
	base := New(defaults())
	next := base.ToggleDarkMode().ToggleMirrorHorizontal()

	assert.True(t, base.DarkMode(), "original is unchanged")
	assert.False(t, base.MirrorHorizontal())
	assert.False(t, next.DarkMode())
	assert.True(t, next.MirrorHorizontal())
	assert.False(t, next.MirrorVertical())
	assert.True(t, next.ToggleMirrorVertical().MirrorVertical())
}

func TestFontSizeSteps(t *testing.T) {
	tests := []struct {
		name string
		from int
		step func(Session) Session
		want int
	}{
		{name: "larger", from: 32, step: Session.LargerText, want: 36},
		{name: "smaller", from: 32, step: Session.SmallerText, want: 28},
		{name: "clamped at max", from: 64, step: Session.LargerText, want: 64},
		{name: "clamped at min", from: 16, step: Session.SmallerText, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(defaults()).WithFontSize(tt.from)
			assert.Equal(t, tt.want, tt.step(s).FontSize())
		})
	}
}

func TestSpeedStepsDoNotDrift(t *testing.T) {
	s := New(defaults()).WithScrollSpeed(0.1)
	for i := 0; i < 20; i++ {
		s = s.Faster()
	}
	assert.Equal(t, 2.1, s.ScrollSpeed())

	for i := 0; i < 100; i++ {
		s = s.Slower()
	}
	assert.Equal(t, types.MinScrollSpeed, s.ScrollSpeed())

	for i := 0; i < 100; i++ {
		s = s.Faster()
	}
	assert.Equal(t, types.MaxScrollSpeed, s.ScrollSpeed())
}

func TestCycleAlignment(t *testing.T) {
	s := New(defaults())
	s = s.CycleAlignment()
	assert.Equal(t, AlignCenter, s.Alignment())
	s = s.CycleAlignment()
	assert.Equal(t, AlignRight, s.Alignment())
	s = s.CycleAlignment()
	assert.Equal(t, AlignLeft, s.Alignment())

	assert.Equal(t, AlignRight, s.WithAlignment(AlignRight).Alignment())
	assert.Equal(t, AlignLeft, s.WithAlignment("diagonal").Alignment())
}

func TestApplyScriptOverrides(t *testing.T) {
	s := New(defaults())

	withOverrides := s.ApplyScript(types.Script{FontSize: types.IntPtr(48), ScrollSpeed: types.FloatPtr(0.7)})
	assert.Equal(t, 48, withOverrides.FontSize())
	assert.Equal(t, 0.7, withOverrides.ScrollSpeed())

	without := withOverrides.ApplyScript(types.Script{})
	assert.Equal(t, 48, without.FontSize(), "absent overrides keep the session value")
	assert.Equal(t, 0.7, without.ScrollSpeed())

	bogus := s.ApplyScript(types.Script{FontSize: types.IntPtr(500), ScrollSpeed: types.FloatPtr(-2)})
	assert.Equal(t, types.DefaultFontSize, bogus.FontSize())
	assert.Equal(t, types.DefaultScrollSpeed, bogus.ScrollSpeed())
}

func TestParseAlignment(t *testing.T) {
	a, ok := ParseAlignment("center")
	assert.True(t, ok)
	assert.Equal(t, AlignCenter, a)

	_, ok = ParseAlignment("Center")
	assert.False(t, ok)
}
