package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) ModeStats(ctx context.Context) ([]ModeStatsRecord, error) {
	b := builder()
	query, args := b.Select("mode",
		entsql.As(entsql.Count("*"), "answers"),
		entsql.As(entsql.Sum("correct"), "correct_count")).
		From(b.Table(answerEventsTable)).
		GroupBy("mode").
		OrderBy("mode").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mode stats: %w", err)
	}
	defer rows.Close()

	var (
		out   []ModeStatsRecord
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			rec     ModeStatsRecord
			correct sql.NullInt64
		)
		if err := rows.Scan(&rec.Mode, &rec.Answers, &correct); err != nil {
			return nil, fmt.Errorf("scan mode stats: %w", err)
		}
		rec.Correct = int(correct.Int64)
		index[rec.Mode] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query mode stats: %w", err)
	}

	if err := r.addSessionCounts(ctx, &out, index); err != nil {
		return nil, err
	}
	return out, nil
}

// addSessionCounts fills in started and completed session counts. Modes
// with sessions but no answers are appended.
func (r *eventRepo) addSessionCounts(ctx context.Context, out *[]ModeStatsRecord, index map[string]int) error {
	b := builder()
	query, args := b.Select("mode", "action", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(sessionEventsTable)).
		Where(entsql.In("action", ActionStart, ActionEnd)).
		GroupBy("mode", "action").
		OrderBy("mode").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query session counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mode, action string
			n            int
		)
		if err := rows.Scan(&mode, &action, &n); err != nil {
			return fmt.Errorf("scan session counts: %w", err)
		}
		i, ok := index[mode]
		if !ok {
			i = len(*out)
			index[mode] = i
			*out = append(*out, ModeStatsRecord{Mode: mode})
		}
		switch action {
		case ActionStart:
			(*out)[i].Sessions = n
		case ActionEnd:
			(*out)[i].CompletedSessions = n
		}
	}
	return rows.Err()
}

func (r *eventRepo) TopMisses(ctx context.Context, limit int) ([]MissRecord, error) {
	b := builder()
	sel := b.Select("mode", "correct_answer", entsql.As(entsql.Count("*"), "misses")).
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("correct", false)).
		GroupBy("mode", "correct_answer").
		OrderBy(entsql.Desc("misses"), "correct_answer")
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top misses: %w", err)
	}
	defer rows.Close()

	var out []MissRecord
	for rows.Next() {
		var rec MissRecord
		if err := rows.Scan(&rec.Mode, &rec.CorrectAnswer, &rec.Misses); err != nil {
			return nil, fmt.Errorf("scan top misses: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query top misses: %w", err)
	}
	return out, nil
}
