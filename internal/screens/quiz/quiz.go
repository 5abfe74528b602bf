// Package quiz is the TUI quiz screen. It renders a quiz.Driver and feeds
// key presses back to it.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
	"github.com/abhisek/kanaz/internal/vocab"
)

type popup struct {
	message string
	kind    qz.PopupKind
}

// QuizScreen plays one session of a mode.
type QuizScreen struct {
	driver *qz.Driver
	mode   vocab.Mode

	emoji    string
	prompt   string
	choices  components.MultiChoice
	position int
	total    int
	stars    int
	popup    *popup
	finished bool
	errMsg   string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.StatusProvider  = (*QuizScreen)(nil)
	_ screen.Closer          = (*QuizScreen)(nil)
	_ qz.Presenter           = (*QuizScreen)(nil)
)

// New creates a quiz screen for mode. The session starts in Init.
func New(v *vocab.Vocabulary, mode vocab.Mode, opts qz.DriverOptions) *QuizScreen {
	s := &QuizScreen{mode: mode}
	s.driver = qz.NewDriver(v, s, opts)
	return s
}

// Driver returns the driver behind the screen.
func (s *QuizScreen) Driver() *qz.Driver {
	return s.driver
}

func (s *QuizScreen) Init() tea.Cmd {
	if err := s.driver.StartMode(s.mode); err != nil {
		switch {
		case errors.Is(err, qz.ErrDataUnavailable):
			s.errMsg = fmt.Sprintf("No words available for %s.", s.mode.DisplayName())
		default:
			s.errMsg = err.Error()
		}
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.mode.DisplayName()
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("⭐ %d", s.stars)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.popup != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if key.Matches(kmsg, keys.Quit) {
		s.driver.Quit()
		return s, pop
	}
	if s.errMsg != "" {
		return s, nil
	}

	if s.popup != nil {
		if key.Matches(kmsg, keys.Dismiss) {
			s.driver.Dismiss()
			if s.finished {
				return s, pop
			}
		}
		return s, nil
	}

	s.choices, _ = s.choices.Update(kmsg)
	choice, ok := s.choices.Chosen()
	if !ok {
		return s, nil
	}
	if _, err := s.driver.Select(choice); err != nil {
		s.errMsg = err.Error()
	}
	return s, nil
}

func pop() tea.Msg {
	return router.PopScreenMsg{}
}

// Close records an unfinished session as abandoned.
func (s *QuizScreen) Close() {
	s.driver.Quit()
}

// RenderStartScreen is reached after the completion popup is dismissed.
// The home screen is the start screen, so the quiz screen closes itself.
func (s *QuizScreen) RenderStartScreen([]vocab.ModeAvailability) {
	s.finished = true
	s.popup = nil
}

func (s *QuizScreen) RenderPrompt(emoji, description string) {
	s.emoji = emoji
	s.prompt = description
}

func (s *QuizScreen) RenderOptions(choices []string) {
	s.choices = components.NewMultiChoice(choices)
	s.popup = nil
}

func (s *QuizScreen) RenderProgress(position, total, stars int) {
	s.position = position
	s.total = total
	s.stars = stars
}

func (s *QuizScreen) RenderPopup(message string, kind qz.PopupKind) {
	s.popup = &popup{message: message, kind: kind}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string

	progress := components.NewProgressBar("", components.Fraction(s.position, s.total), false, cw)
	sections = append(sections,
		progress.View(),
		theme.Subtitle.Width(cw).Render(qz.FormatProgress(s.position, s.total, s.stars)),
	)

	if s.popup != nil {
		sections = append(sections, "", s.renderPopup(cw))
		return layout.Center(strings.Join(sections, "\n"), width, height)
	}

	card := lipgloss.NewStyle().Bold(true).Render(s.emoji+"  "+s.prompt) +
		"\n\n" + s.choices.View()
	sections = append(sections, "", components.ArcadeCard(card, cw))

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (s *QuizScreen) renderPopup(cw int) string {
	if s.popup.kind == qz.PopupSuccess {
		body := components.RenderMascot(components.MascotCelebrating) + "\n\n" + s.popup.message
		return theme.PopupSuccess.Width(cw).Align(lipgloss.Center).Render(body)
	}
	return theme.PopupFail.Width(cw).Align(lipgloss.Center).Render(s.popup.message)
}
