package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
	"github.com/abhisek/kanaz/internal/vocab"
)

// sessionLimit caps how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventRecord
	Err       error
}

var backKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))

// HistoryScreen lists finished and abandoned sessions. Expanding a session
// shows the answers given in it.
type HistoryScreen struct {
	eventRepo store.EventRepo
	keys      components.KeyMap
	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		keys:      components.DefaultKeyMap,
		answers:   make(map[string][]store.AnswerEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: sessionLimit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, backKey):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Select):
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+summaryLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			s.writeAnswers(&b, sess.SessionID, width)
		}
	}

	return b.String()
}

func (s *HistoryScreen) writeAnswers(b *strings.Builder, sessionID string, width int) {
	answers, ok := s.answers[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	switch {
	case !ok:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading...")))
		b.WriteString("\n")
		return
	case len(answers) == 0:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answers recorded")))
		b.WriteString("\n")
		return
	}

	for _, a := range answers {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answerLine(a)))
		b.WriteString("\n")
	}
}

func summaryLine(sess store.SessionSummaryRecord) string {
	dateStr := sess.Timestamp.Local().Format("Jan 02, 2006 15:04")
	durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

	var accuracy float64
	if sess.Attempts > 0 {
		accuracy = float64(sess.CorrectAnswers) / float64(sess.Attempts) * 100
	}

	status := "done"
	if !sess.Completed() {
		status = "quit"
	}

	return fmt.Sprintf("%s  %-18s %s  %d/%d  %.0f%% accuracy  %s",
		dateStr, vocab.Mode(sess.Mode).DisplayName(), durationStr,
		sess.CorrectAnswers, sess.QuestionsTotal, accuracy, status)
}

func answerLine(a store.AnswerEventRecord) string {
	if a.Correct {
		return theme.Correct.Render(fmt.Sprintf("    ✓ %s  %s", a.Prompt, a.SelectedAnswer))
	}
	return theme.Incorrect.Render(fmt.Sprintf("    ✗ %s  %s (answer: %s)", a.Prompt, a.SelectedAnswer, a.CorrectAnswer))
}
