package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventData captures a quiz session lifecycle event.
type SessionEventData struct {
	SessionID      string
	Action         string
	Mode           string
	QuestionsTotal int
	CorrectAnswers int
	Attempts       int
	DurationSecs   int
}

// AnswerEventData captures one submitted answer, right or wrong.
type AnswerEventData struct {
	SessionID      string
	Mode           string
	Script         string
	Prompt         string
	CorrectAnswer  string
	SelectedAnswer string
	Correct        bool
	Position       int
	TimeMs         int64
}

// SessionSummaryRecord is a finished or abandoned session.
type SessionSummaryRecord struct {
	Sequence       int64
	Timestamp      time.Time
	SessionID      string
	Action         string
	Mode           string
	QuestionsTotal int
	CorrectAnswers int
	Attempts       int
	DurationSecs   int
}

// Completed reports whether the session reached the end of its queue.
func (r SessionSummaryRecord) Completed() bool {
	return r.Action == ActionEnd
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// ModeStatsRecord aggregates answer events for one mode.
type ModeStatsRecord struct {
	Mode              string
	Answers           int
	Correct           int
	Sessions          int
	CompletedSessions int
}

// Accuracy returns the share of answers that were correct.
func (r ModeStatsRecord) Accuracy() float64 {
	if r.Answers == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answers)
}

// MissRecord counts wrong answers given for one expected answer.
type MissRecord struct {
	Mode          string
	CorrectAnswer string
	Misses        int
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// AppendSessionEvent records a session start, end or abandon.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answer submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns end and abandon events, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswerEvents returns the answers of one session in order.
	QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// ModeStats aggregates answers and sessions per mode.
	ModeStats(ctx context.Context) ([]ModeStatsRecord, error)

	// TopMisses returns the answers most often missed, most missed first.
	TopMisses(ctx context.Context, limit int) ([]MissRecord, error)
}
