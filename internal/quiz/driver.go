package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/distractor"
	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/vocab"
)

// ErrAwaitingDismiss is returned by Select while a popup is open.
var ErrAwaitingDismiss = errors.New("popup must be dismissed first")

// DriverOptions configures a Driver. Zero values pick defaults.
type DriverOptions struct {
	Rand        *rand.Rand
	MaxAttempts int
	Exclusions  kana.Exclusions
	Events      store.EventRepo
	Logger      *zap.Logger
}

// Driver couples a Vocabulary, a Session and an option builder to a
// Presenter. All methods run on the UI goroutine.
type Driver struct {
	vocab     *vocab.Vocabulary
	presenter Presenter
	session   *Session
	builder   *distractor.Builder
	events    store.EventRepo
	logger    *zap.Logger

	options []string
	popup   *PopupKind
	shownAt time.Time
}

// NewDriver creates a Driver rendering to presenter.
func NewDriver(v *vocab.Vocabulary, presenter Presenter, opts DriverOptions) *Driver {
	rng := opts.Rand
	if rng == nil {
		rng = distractor.NewRand(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	builderOpts := []distractor.Option{distractor.WithMaxAttempts(opts.MaxAttempts)}
	if opts.Exclusions != nil {
		builderOpts = append(builderOpts, distractor.WithExclusions(opts.Exclusions))
	}

	return &Driver{
		vocab:     v,
		presenter: presenter,
		session:   NewSession(v, rng),
		builder:   distractor.NewBuilder(v.Pools(), rng, builderOpts...),
		events:    opts.Events,
		logger:    logger,
	}
}

// Session returns the driven session.
func (d *Driver) Session() *Session {
	return d.session
}

// Options returns the choices currently on screen.
func (d *Driver) Options() []string {
	return d.options
}

// Popup returns the kind of the open popup, if any.
func (d *Driver) Popup() (PopupKind, bool) {
	if d.popup == nil {
		return 0, false
	}
	return *d.popup, true
}

// ShowStart abandons any running session and renders the start screen.
func (d *Driver) ShowStart() {
	d.abandon()
	d.session.Restart()
	d.options = nil
	d.popup = nil
	d.presenter.RenderStartScreen(d.vocab.AvailableModes())
}

// StartMode starts a new session for mode and presents its first question.
func (d *Driver) StartMode(mode vocab.Mode) error {
	d.abandon()
	if err := d.session.Start(mode); err != nil {
		d.logger.Warn("start mode failed", zap.String("mode", string(mode)), zap.Error(err))
		return err
	}
	d.popup = nil

	d.logger.Info("session started",
		zap.String("session_id", d.session.ID()),
		zap.String("mode", string(mode)),
		zap.Int("questions", d.session.Total()),
	)
	d.appendSession(store.ActionStart)
	d.present()
	return nil
}

// Select submits choice as the answer to the current question.
func (d *Driver) Select(choice string) (Result, error) {
	if d.popup != nil {
		return Result{}, ErrAwaitingDismiss
	}

	res, err := d.session.SubmitAnswer(choice)
	if err != nil {
		return res, err
	}
	d.appendAnswer(res)

	switch {
	case res.Completed:
		d.logger.Info("session completed",
			zap.String("session_id", d.session.ID()),
			zap.Int("correct", d.session.CorrectCount()),
			zap.Int("attempts", d.session.Attempts()),
		)
		d.appendSession(store.ActionEnd)
		d.presenter.RenderProgress(d.session.Position(), d.session.Total(), d.session.StarCount())
		d.openPopup(CompletedMessage, PopupSuccess)
	case res.Correct:
		d.present()
	default:
		d.openPopup(WrongAnswerMessage(res.CorrectAnswer), PopupFail)
	}
	return res, nil
}

// Dismiss closes the open popup. After a completed quiz it returns to the
// start screen; after a wrong answer it re-presents the same question with
// freshly built options.
func (d *Driver) Dismiss() {
	if d.popup == nil {
		return
	}
	kind := *d.popup
	d.popup = nil

	if kind == PopupSuccess {
		d.ShowStart()
		return
	}
	d.present()
}

// Quit records a running session as abandoned.
func (d *Driver) Quit() {
	d.abandon()
	d.session.Restart()
}

func (d *Driver) openPopup(message string, kind PopupKind) {
	d.popup = &kind
	d.presenter.RenderPopup(message, kind)
}

func (d *Driver) present() {
	q, err := d.session.CurrentQuestion()
	if err != nil {
		d.logger.Error("present question", zap.Error(err))
		return
	}

	opts, err := d.builder.Build(q.Answer, q.Script)
	if err != nil {
		// Build still returns the answer plus whatever distractors it found.
		d.logger.Warn("option set incomplete",
			zap.String("answer", q.Answer),
			zap.String("script", string(q.Script)),
			zap.Error(err),
		)
	}
	d.options = opts
	d.shownAt = time.Now()

	d.presenter.RenderPrompt(q.Emoji, q.Prompt)
	d.presenter.RenderOptions(opts)
	d.presenter.RenderProgress(d.session.Position(), d.session.Total(), d.session.StarCount())
}

func (d *Driver) abandon() {
	if d.session.Phase() != PhaseInProgress {
		return
	}
	d.logger.Info("session abandoned",
		zap.String("session_id", d.session.ID()),
		zap.Int("position", d.session.Position()),
	)
	d.appendSession(store.ActionAbandon)
}

func (d *Driver) appendSession(action string) {
	if d.events == nil {
		return
	}
	st := d.session
	err := d.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:      st.ID(),
		Action:         action,
		Mode:           string(st.Mode()),
		QuestionsTotal: st.Total(),
		CorrectAnswers: st.CorrectCount(),
		Attempts:       st.Attempts(),
		DurationSecs:   int(st.Elapsed().Seconds()),
	})
	if err != nil {
		d.logger.Warn("append session event", zap.String("action", action), zap.Error(err))
	}
}

func (d *Driver) appendAnswer(res Result) {
	if d.events == nil {
		return
	}
	err := d.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:      d.session.ID(),
		Mode:           string(d.session.Mode()),
		Script:         string(res.Question.Script),
		Prompt:         res.Question.Prompt,
		CorrectAnswer:  res.CorrectAnswer,
		SelectedAnswer: res.Selected,
		Correct:        res.Correct,
		Position:       res.Position,
		TimeMs:         time.Since(d.shownAt).Milliseconds(),
	})
	if err != nil {
		d.logger.Warn("append answer event", zap.Error(err))
	}
}
