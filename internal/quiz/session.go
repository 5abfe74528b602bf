package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kanaz/internal/vocab"
)

// QuestionSource supplies the unshuffled questions for a mode.
type QuestionSource interface {
	Questions(mode vocab.Mode) []vocab.Question
	CheckMode(mode vocab.Mode) error
}

// Session owns the state of a single quiz run. It is not safe for
// concurrent use; the UI loop is its only caller.
type Session struct {
	source QuestionSource
	rng    *rand.Rand
	now    func() time.Time
	state  SessionState
}

// NewSession creates an idle session. A nil rng uses a randomly seeded
// source.
func NewSession(source QuestionSource, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Session{source: source, rng: rng, now: time.Now}
}

// Start builds and shuffles the queue for mode, replacing any previous
// state.
func (s *Session) Start(mode vocab.Mode) error {
	if err := s.source.CheckMode(mode); err != nil {
		return err
	}

	queue := s.source.Questions(mode)
	s.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	s.state = SessionState{
		ID:        uuid.New().String(),
		Mode:      mode,
		Queue:     queue,
		Phase:     PhaseInProgress,
		StartedAt: s.now(),
	}
	return nil
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() (vocab.Question, error) {
	if s.state.Phase == PhaseIdle {
		return vocab.Question{}, ErrNotStarted
	}
	if s.IsComplete() {
		return vocab.Question{}, ErrQueueExhausted
	}
	return s.state.Queue[s.state.Position], nil
}

// IsComplete reports whether every question has been answered correctly.
func (s *Session) IsComplete() bool {
	return s.state.Position >= len(s.state.Queue)
}

// SubmitAnswer compares selected with the current answer. A correct answer
// advances the session; a wrong one leaves position and score unchanged.
func (s *Session) SubmitAnswer(selected string) (Result, error) {
	q, err := s.CurrentQuestion()
	if err != nil {
		return Result{}, err
	}

	s.state.Attempts++
	res := Result{
		Selected:      selected,
		CorrectAnswer: q.Answer,
		Question:      q,
		Position:      s.state.Position,
	}
	if selected != q.Answer {
		return res, nil
	}

	res.Correct = true
	s.state.CorrectCount++
	s.state.Position++
	if s.IsComplete() {
		s.state.Phase = PhaseCompleted
		res.Completed = true
	}
	return res, nil
}

// StarCount returns one star per StarsPerCorrect correct answers.
func (s *Session) StarCount() int {
	return s.state.CorrectCount / StarsPerCorrect
}

// Restart discards the session state and returns to Idle.
func (s *Session) Restart() {
	s.state = SessionState{}
}

// State returns a snapshot of the session state.
func (s *Session) State() SessionState {
	st := s.state
	st.Queue = append([]vocab.Question(nil), s.state.Queue...)
	return st
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase { return s.state.Phase }

// Mode returns the mode of the running session.
func (s *Session) Mode() vocab.Mode { return s.state.Mode }

// ID returns the session identifier, empty while idle.
func (s *Session) ID() string { return s.state.ID }

// Position returns the index of the current question.
func (s *Session) Position() int { return s.state.Position }

// Total returns the queue length.
func (s *Session) Total() int { return len(s.state.Queue) }

// CorrectCount returns the number of correct answers.
func (s *Session) CorrectCount() int { return s.state.CorrectCount }

// Attempts returns the number of submissions, wrong ones included.
func (s *Session) Attempts() int { return s.state.Attempts }

// Elapsed returns the time since Start.
func (s *Session) Elapsed() time.Duration {
	if s.state.Phase == PhaseIdle {
		return 0
	}
	return s.now().Sub(s.state.StartedAt)
}
