// Package welcome is the splash screen. It loads the vocabulary in the
// background and hands it to the home screen.
package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/ui/theme"
	"github.com/abhisek/kanaz/internal/vocab"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │あ ア│  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// loadedMsg carries the vocabulary once both datasets have been read.
type loadedMsg struct {
	Vocab *vocab.Vocabulary
}

// LoadFunc produces the vocabulary. It runs off the UI goroutine.
type LoadFunc func(ctx context.Context) *vocab.Vocabulary

// WelcomeScreen shows a splash animation while the datasets load, then
// transitions to the home screen.
type WelcomeScreen struct {
	load         LoadFunc
	homeFactory  func(*vocab.Vocabulary) screen.Screen
	vocab        *vocab.Vocabulary
	elapsed      time.Duration
	tickCount    int
	pending      bool
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that loads with load and transitions to the
// screen produced by homeFactory.
func New(load LoadFunc, homeFactory func(*vocab.Vocabulary) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		load:        load,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	load := w.load
	return tea.Batch(
		tick(),
		func() tea.Msg {
			return loadedMsg{Vocab: load(context.Background())}
		},
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		w.vocab = msg.Vocab
		if w.pending {
			return w, w.transition()
		}
		return w, nil

	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		if w.vocab == nil {
			// Transition as soon as loading completes.
			w.pending = true
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

// Loaded reports whether the vocabulary has arrived.
func (w *WelcomeScreen) Loaded() bool {
	return w.vocab != nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory(w.vocab)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Let's learn kana! かなを まなぼう"))

		hint := "press any key to continue"
		if w.vocab == nil {
			hint = "loading words..."
		}
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(hint))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
