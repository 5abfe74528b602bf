// Package quiz implements the kana quiz session state machine and the
// driver that turns its results into presenter calls.
package quiz

import (
	"errors"
	"time"

	"github.com/abhisek/kanaz/internal/vocab"
)

var (
	// ErrNotStarted is returned when a session is used before Start.
	ErrNotStarted = errors.New("quiz session not started")

	// ErrQueueExhausted is returned when the current question is read or
	// answered past the end of the queue.
	ErrQueueExhausted = errors.New("question queue exhausted")

	// ErrUnknownMode is returned by Start for an unrecognized mode.
	ErrUnknownMode = vocab.ErrUnknownMode

	// ErrDataUnavailable is returned by Start when the mode has no questions.
	ErrDataUnavailable = vocab.ErrDataUnavailable
)

// StarsPerCorrect is the number of correct answers worth one star.
const StarsPerCorrect = 10

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// SessionState is the mutable state of one quiz run.
type SessionState struct {
	ID           string
	Mode         vocab.Mode
	Queue        []vocab.Question
	Position     int
	CorrectCount int
	Attempts     int
	Phase        Phase
	StartedAt    time.Time
}

// Result is the outcome of one answer submission. A wrong answer is a
// result, not an error.
type Result struct {
	Correct       bool
	Selected      string
	CorrectAnswer string
	Question      vocab.Question
	Position      int
	Completed     bool
}
