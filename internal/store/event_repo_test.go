package store

import (
	"context"
	"testing"
	"time"
)

func seedSession(t *testing.T, repo EventRepo, id, mode string, answers []AnswerEventData, completed bool) {
	t.Helper()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: id, Action: ActionStart, Mode: mode, QuestionsTotal: len(answers),
	}); err != nil {
		t.Fatalf("append start: %v", err)
	}

	correct := 0
	for i, a := range answers {
		a.SessionID = id
		a.Mode = mode
		a.Position = i
		if a.Correct {
			correct++
		}
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	action := ActionAbandon
	if completed {
		action = ActionEnd
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:      id,
		Action:         action,
		Mode:           mode,
		QuestionsTotal: len(answers),
		CorrectAnswers: correct,
		Attempts:       len(answers),
		DurationSecs:   42,
	}); err != nil {
		t.Fatalf("append end: %v", err)
	}
}

func TestAnswerEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedSession(t, repo, "s1", "hiragana", []AnswerEventData{
		{Script: "hiragana", Prompt: "apple", CorrectAnswer: "りんご", SelectedAnswer: "ごんご", Correct: false, TimeMs: 1500},
		{Script: "hiragana", Prompt: "apple", CorrectAnswer: "りんご", SelectedAnswer: "りんご", Correct: true, TimeMs: 900},
	}, true)
	seedSession(t, repo, "s2", "katakana", []AnswerEventData{
		{Script: "katakana", Prompt: "cat", CorrectAnswer: "ネコ", SelectedAnswer: "ネコ", Correct: true},
	}, true)

	events, err := repo.QueryAnswerEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("query answer events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	first := events[0]
	if first.SelectedAnswer != "ごんご" || first.Correct {
		t.Errorf("first event = %+v, want wrong answer ごんご", first)
	}
	if first.CorrectAnswer != "りんご" || first.Prompt != "apple" || first.TimeMs != 1500 {
		t.Errorf("first event fields = %+v", first)
	}
	if !events[1].Correct || events[1].Position != 1 {
		t.Errorf("second event = %+v, want correct at position 1", events[1])
	}
	if events[0].Sequence >= events[1].Sequence {
		t.Errorf("sequences not increasing: %d, %d", events[0].Sequence, events[1].Sequence)
	}
	if time.Since(first.Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", first.Timestamp)
	}
}

func TestQuerySessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedSession(t, repo, "s1", "hiragana", []AnswerEventData{{Correct: true}}, true)
	seedSession(t, repo, "s2", "food", []AnswerEventData{{Correct: false}}, false)
	seedSession(t, repo, "s3", "katakana", []AnswerEventData{{Correct: true}, {Correct: true}}, true)

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(sums) != 3 {
		t.Fatalf("len(summaries) = %d, want 3 (start events excluded)", len(sums))
	}
	if sums[0].SessionID != "s3" || sums[2].SessionID != "s1" {
		t.Errorf("order = %s,%s,%s; want newest first", sums[0].SessionID, sums[1].SessionID, sums[2].SessionID)
	}
	if sums[1].Completed() {
		t.Error("abandoned session reported as completed")
	}
	if !sums[0].Completed() || sums[0].CorrectAnswers != 2 || sums[0].DurationSecs != 42 {
		t.Errorf("summary s3 = %+v", sums[0])
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s3" {
		t.Errorf("limited = %+v, want only s3", limited)
	}

	before, err := repo.QuerySessionSummaries(ctx, QueryOpts{Before: sums[0].Sequence})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("len(before) = %d, want 2", len(before))
	}
}

func TestModeStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedSession(t, repo, "s1", "hiragana", []AnswerEventData{
		{Correct: false}, {Correct: true}, {Correct: true},
	}, true)
	seedSession(t, repo, "s2", "hiragana", []AnswerEventData{{Correct: true}}, false)
	seedSession(t, repo, "s3", "katakana", []AnswerEventData{{Correct: false}}, false)

	stats, err := repo.ModeStats(ctx)
	if err != nil {
		t.Fatalf("mode stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2: %+v", len(stats), stats)
	}

	byMode := map[string]ModeStatsRecord{}
	for _, st := range stats {
		byMode[st.Mode] = st
	}

	h := byMode["hiragana"]
	if h.Answers != 4 || h.Correct != 3 {
		t.Errorf("hiragana answers/correct = %d/%d, want 4/3", h.Answers, h.Correct)
	}
	if h.Sessions != 2 || h.CompletedSessions != 1 {
		t.Errorf("hiragana sessions/completed = %d/%d, want 2/1", h.Sessions, h.CompletedSessions)
	}
	if got := h.Accuracy(); got != 0.75 {
		t.Errorf("hiragana accuracy = %v, want 0.75", got)
	}

	k := byMode["katakana"]
	if k.Answers != 1 || k.Correct != 0 || k.Sessions != 1 || k.CompletedSessions != 0 {
		t.Errorf("katakana stats = %+v", k)
	}
}

func TestModeStats_Empty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().ModeStats(context.Background())
	if err != nil {
		t.Fatalf("mode stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats = %+v, want none", stats)
	}
}

func TestTopMisses(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedSession(t, repo, "s1", "hiragana", []AnswerEventData{
		{CorrectAnswer: "りんご", Correct: false},
		{CorrectAnswer: "りんご", Correct: false},
		{CorrectAnswer: "ねこ", Correct: false},
		{CorrectAnswer: "ねこ", Correct: true},
		{CorrectAnswer: "いぬ", Correct: true},
	}, true)

	misses, err := repo.TopMisses(ctx, 5)
	if err != nil {
		t.Fatalf("top misses: %v", err)
	}
	if len(misses) != 2 {
		t.Fatalf("len(misses) = %d, want 2: %+v", len(misses), misses)
	}
	if misses[0].CorrectAnswer != "りんご" || misses[0].Misses != 2 {
		t.Errorf("misses[0] = %+v, want りんご x2", misses[0])
	}
	if misses[1].CorrectAnswer != "ねこ" || misses[1].Misses != 1 {
		t.Errorf("misses[1] = %+v, want ねこ x1", misses[1])
	}

	one, err := repo.TopMisses(ctx, 1)
	if err != nil {
		t.Fatalf("top misses limit: %v", err)
	}
	if len(one) != 1 {
		t.Errorf("len(TopMisses(1)) = %d, want 1", len(one))
	}
}
