package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "mode", "script", "prompt",
			"correct_answer", "selected_answer", "correct", "position", "time_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Mode, data.Script, data.Prompt,
			data.CorrectAnswer, data.SelectedAnswer, data.Correct, data.Position, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	b := builder()
	query, args := b.Select("sequence", "timestamp", "session_id", "mode", "script", "prompt",
		"correct_answer", "selected_answer", "correct", "position", "time_ms").
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Mode, &rec.Script,
			&rec.Prompt, &rec.CorrectAnswer, &rec.SelectedAnswer, &rec.Correct, &rec.Position,
			&rec.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}
