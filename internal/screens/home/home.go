// Package home is the start screen: it lists the quiz modes and whether
// each has data.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	qz "github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens/history"
	quizscreen "github.com/abhisek/kanaz/internal/screens/quiz"
	"github.com/abhisek/kanaz/internal/selfupdate"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/theme"
	"github.com/abhisek/kanaz/internal/vocab"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 30

// Options carries the collaborators the home screen hands to the screens
// it opens.
type Options struct {
	Driver  qz.DriverOptions
	Events  store.EventRepo     // nil hides history
	Checker *selfupdate.Checker // nil skips the update check
	Version string
	Logger  *zap.Logger
}

type updateCheckedMsg struct {
	Result *selfupdate.CheckResult
}

// HomeScreen is the main menu.
type HomeScreen struct {
	vocab         *vocab.Vocabulary
	opts          Options
	menu          components.Menu
	modes         []vocab.ModeAvailability
	latestVersion string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for the loaded vocabulary.
func New(v *vocab.Vocabulary, opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &HomeScreen{
		vocab: v,
		opts:  opts,
		modes: v.AvailableModes(),
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.modes)+2)
	for _, m := range h.modes {
		mode := m.Mode
		detail := fmt.Sprintf("(%d)", m.Questions)
		if !m.Available {
			detail = "(no data)"
		}
		items = append(items, components.MenuItem{
			Label:    mode.DisplayName(),
			Detail:   detail,
			Disabled: !m.Available,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.New(h.vocab, mode, h.opts.Driver)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: h.opts.Events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.opts.Events)}
				}
			},
		},
		components.MenuItem{
			Label:  "Exit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.opts.Checker == nil || h.opts.Version == "" || h.opts.Version == selfupdate.DevVersion {
		return nil
	}
	checker, version, logger := h.opts.Checker, h.opts.Version, h.opts.Logger
	return func() tea.Msg {
		result, err := checker.Check(context.Background(), &selfupdate.CheckInput{Version: version})
		if err != nil {
			logger.Debug("update check failed", zap.Error(err))
			return updateCheckedMsg{}
		}
		return updateCheckedMsg{Result: result}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(updateCheckedMsg); ok {
		if msg.Result != nil && msg.Result.UpdateAvailable {
			h.latestVersion = msg.Result.LatestVersion
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// LatestVersion returns the newer release found by the update check.
func (h *HomeScreen) LatestVersion() string {
	return h.latestVersion
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := height+6 < 28 || width < 90
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(components.RenderMascot(h.mascotVariant())))
	}

	for _, f := range h.vocab.Failures {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("⚠ %s words could not be loaded", f.Dataset)))
	}

	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(h.menu.View(buttonWidth)))

	if h.latestVersion != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("New version %s available · run kanaz update", h.latestVersion)))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascotVariant() components.MascotVariant {
	if len(h.vocab.Failures) > 0 {
		return components.MascotAlert
	}
	return components.MascotIdle
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("K · A · N · A · Z\nかな れんしゅう")
}
