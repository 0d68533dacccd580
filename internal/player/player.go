// Package player hosts script playback in the terminal. It owns the frame
// loop that drives the scroll engine and renders the loaded script with the
// session's size, alignment, theme and mirroring.
package player

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/prompter/internal/library"
	"github.com/mesh-intelligence/prompter/internal/logger"
	"github.com/mesh-intelligence/prompter/internal/scroll"
	"github.com/mesh-intelligence/prompter/internal/session"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// DefaultFrameRate is the refresh rate used when none is configured.
const DefaultFrameRate = 60

// footerHeight is the number of rows below the text: status and help.
const footerHeight = 2

// Options tunes a player.
type Options struct {
	// FrameRate is the number of engine ticks per second.
	FrameRate int
	// Autoplay starts scrolling as soon as the program starts.
	Autoplay bool
	// Logger overrides the module logger.
	Logger *zap.Logger
}

// frameMsg is one display refresh. gen ties it to the tick chain that
// scheduled it; frames from a chain that was cancelled by a pause are
// dropped so resuming never runs two chains at once.
type frameMsg struct{ gen int }

// Model is the bubbletea model for one playback session.
type Model struct {
	store  *library.Store
	script types.Script
	sess   session.Session

	engine  *scroll.Engine
	view    viewport.Model
	surface *surface

	// rows is the viewport content: the laid-out script between blank
	// padding. lines counts the script rows alone.
	rows  []string
	lines int

	keys keyMap
	help help.Model

	frame time.Duration
	gen   int

	width, height int
	ready         bool
	autoplay      bool

	id  string
	log *zap.Logger
}

// New builds a player for script, which must already be loaded in store.
// The script's saved overrides are applied on top of sess.
func New(store *library.Store, script types.Script, sess session.Session, opts Options) *Model {
	rate := opts.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	log := opts.Logger
	if log == nil {
		log = logger.WithModule("player")
	}

	id := ""
	if u, err := uuid.NewV7(); err == nil {
		id = u.String()
	}

	m := &Model{
		store:    store,
		script:   script,
		sess:     sess.ApplyScript(script),
		view:     viewport.New(0, 0),
		keys:     defaultKeyMap(),
		help:     help.New(),
		frame:    time.Second / time.Duration(rate),
		autoplay: opts.Autoplay,
		id:       id,
		log:      log.With(zap.String("session", id), zap.Int64("script", script.ID)),
	}
	m.surface = newSurface(&m.view, lineHeight(m.sess.FontSize()))
	m.engine = scroll.New(m.surface, m.sess.ScrollSpeed())
	m.applyTheme()
	return m
}

// Run starts an alternate-screen program for m and blocks until it quits or
// ctx is cancelled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Session returns the current presentation state.
func (m *Model) Session() session.Session { return m.sess }

// Engine returns the scroll engine driven by the model.
func (m *Model) Engine() *scroll.Engine { return m.engine }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.log.Info("playback session started", zap.String("name", m.script.Name))
	if m.autoplay {
		return m.play()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.engine.Tick() {
			return m, m.nextFrame()
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		m.engine.Unmount()
		m.store.Unload()
		m.log.Info("playback session ended", zap.Int("advanced", m.engine.Advanced()))
		return tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.engine.Running() {
			m.stop()
			return nil
		}
		return m.play()

	case key.Matches(msg, m.keys.Start):
		m.engine.JumpToStart()
	case key.Matches(msg, m.keys.End):
		m.engine.JumpToEnd()

	case key.Matches(msg, m.keys.Faster):
		m.setSession(m.sess.Faster())
	case key.Matches(msg, m.keys.Slower):
		m.setSession(m.sess.Slower())
	case key.Matches(msg, m.keys.Larger):
		m.setSession(m.sess.LargerText())
	case key.Matches(msg, m.keys.Smaller):
		m.setSession(m.sess.SmallerText())

	case key.Matches(msg, m.keys.MirrorH):
		m.sess = m.sess.ToggleMirrorHorizontal()
		m.relayout()
	case key.Matches(msg, m.keys.MirrorV):
		m.sess = m.sess.ToggleMirrorVertical()
	case key.Matches(msg, m.keys.Align):
		m.sess = m.sess.CycleAlignment()
		m.relayout()
	case key.Matches(msg, m.keys.Theme):
		m.sess = m.sess.ToggleDarkMode()
		m.applyTheme()

	case key.Matches(msg, m.keys.SaveSettings):
		m.saveSettings()
	}
	return nil
}

// play starts a fresh tick chain.
func (m *Model) play() tea.Cmd {
	if !m.engine.Play() {
		return nil
	}
	m.gen++
	return m.nextFrame()
}

// stop pauses the engine and orphans the in-flight frame.
func (m *Model) stop() {
	m.engine.Pause()
	m.gen++
}

func (m *Model) nextFrame() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.frame, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

// setSession applies a size or speed change and records it as the script's
// playback defaults.
func (m *Model) setSession(next session.Session) {
	prev := m.sess
	m.sess = next
	if next.ScrollSpeed() != prev.ScrollSpeed() {
		// Session speeds are always in range.
		_ = m.engine.SetSpeed(next.ScrollSpeed())
	}
	if next.FontSize() != prev.FontSize() {
		m.relayout()
	}
	if next.FontSize() != prev.FontSize() || next.ScrollSpeed() != prev.ScrollSpeed() {
		m.saveSettings()
	}
}

func (m *Model) saveSettings() {
	err := m.store.UpdatePlaybackSettings(m.script.ID, m.sess.FontSize(), m.sess.ScrollSpeed())
	if err != nil {
		m.log.Debug("playback settings not saved", zap.Error(err))
		return
	}
	if cur, ok := m.store.Current(); ok {
		m.script = cur
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.view.Width = width
	m.view.Height = max(1, height-footerHeight)
	m.help.Width = width
	m.ready = true
	m.relayout()
}

// relayout re-renders the script for the current geometry and session,
// keeping the reading position.
func (m *Model) relayout() {
	if !m.ready {
		return
	}
	lines := layout(m.script.Content, m.width, m.sess)
	m.lines = len(lines)
	m.rows = padRows(lines, m.width, m.view.Height)
	m.view.SetContent(strings.Join(m.rows, "\n"))
	m.surface.rescale(lineHeight(m.sess.FontSize()))
	m.surface.SetOffset(m.surface.Offset())
}

func (m *Model) applyTheme() {
	t := themeFor(m.sess.DarkMode())
	m.view.Style = t.text
	m.help.Styles.ShortKey = t.accent
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}
	var b strings.Builder
	b.WriteString(m.textView())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// guideRow is the viewport row of the reading line. The top padding puts
// script row YOffset on it.
func (m *Model) guideRow() int { return m.view.Height / 2 }

// textView renders the visible rows with the reading line marked. A vertical
// mirror flips the window in place, so the script still reads and scrolls
// from its first line.
func (m *Model) textView() string {
	rows := strings.Split(m.view.View(), "\n")
	if g := m.guideRow(); g < len(rows) {
		row := ""
		if i := m.view.YOffset + g; i < len(m.rows) {
			row = m.rows[i]
		}
		rows[g] = themeFor(m.sess.DarkMode()).guide.Width(m.width).MaxWidth(m.width).Render(row)
	}
	if m.sess.MirrorVertical() {
		slices.Reverse(rows)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) statusLine() string {
	t := themeFor(m.sess.DarkMode())

	state := m.engine.State().String()
	if m.engine.AtEnd() {
		state += " (end)"
	}
	var flags []string
	if m.sess.MirrorHorizontal() {
		flags = append(flags, "mirror-h")
	}
	if m.sess.MirrorVertical() {
		flags = append(flags, "mirror-v")
	}
	line := fmt.Sprintf(" %s  %s  row %d/%d  speed %.1f  size %d  %s %s",
		t.accent.Render(m.script.Name), state, min(m.surface.row()+1, m.lines), m.lines,
		m.sess.ScrollSpeed(), m.sess.FontSize(), m.sess.Alignment(), strings.Join(flags, " "))
	return t.status.Width(m.width).Render(line)
}
