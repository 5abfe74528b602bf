package console

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/vocab"
)

func testVocab() *vocab.Vocabulary {
	return vocab.New([]vocab.VocabularyEntry{
		{Emoji: "🍎", Description: "apple", Kana: vocab.Reading{Hiragana: "りんご", Katakana: "リンゴ"}},
		{Emoji: "🐱", Description: "cat", Kana: vocab.Reading{Hiragana: "ねこ", Katakana: "ネコ"}},
	}, nil)
}

func TestPlay_AnswerByText(t *testing.T) {
	var out bytes.Buffer
	// Answering with the option text works regardless of shuffle order.
	in := strings.NewReader("ねこ\nりんご\nりんご\nねこ\n\n")
	c := New(in, &out)
	d := quiz.NewDriver(testVocab(), c, quiz.DriverOptions{Rand: rand.New(rand.NewPCG(1, 1))})

	if err := c.Play(d, vocab.ModeHiragana); err != nil {
		t.Fatalf("Play: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, quiz.CompletedMessage) {
		t.Errorf("output missing completion message:\n%s", got)
	}
	if !strings.Contains(got, "Question 1 / 2") {
		t.Errorf("output missing progress line:\n%s", got)
	}
	if d.Session().Phase() != quiz.PhaseCompleted {
		t.Errorf("Phase() = %s, want completed", d.Session().Phase())
	}
}

type nopPresenter struct{}

func (nopPresenter) RenderStartScreen([]vocab.ModeAvailability) {}
func (nopPresenter) RenderPrompt(string, string) {}
func (nopPresenter) RenderOptions([]string) {}
func (nopPresenter) RenderProgress(int, int, int) {}
func (nopPresenter) RenderPopup(string, quiz.PopupKind) {}

func indexOf(opts []string, want string, match bool) int {
	for i, o := range opts {
		if (o == want) == match {
			return i + 1
		}
	}
	return 0
}

func TestPlay_WrongAnswerShowsRetry(t *testing.T) {
	v := vocab.New([]vocab.VocabularyEntry{
		{Emoji: "🍎", Description: "apple", Kana: vocab.Reading{Hiragana: "りんご", Katakana: "リンゴ"}},
	}, nil)
	seed := func() *rand.Rand { return rand.New(rand.NewPCG(3, 3)) }

	// A twin driver with the same seed predicts the options the console
	// will show.
	twin := quiz.NewDriver(v, nopPresenter{}, quiz.DriverOptions{Rand: seed()})
	if err := twin.StartMode(vocab.ModeHiragana); err != nil {
		t.Fatalf("StartMode: %v", err)
	}
	wrong := indexOf(twin.Options(), "りんご", false)
	if _, err := twin.Select(twin.Options()[wrong-1]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	twin.Dismiss()
	right := indexOf(twin.Options(), "りんご", true)

	var out bytes.Buffer
	input := fmt.Sprintf("%d\n\n%d\n\n", wrong, right)
	c := New(strings.NewReader(input), &out)
	d := quiz.NewDriver(v, c, quiz.DriverOptions{Rand: seed()})

	if err := c.Play(d, vocab.ModeHiragana); err != nil {
		t.Fatalf("Play: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Wrong answer! The answer was りんご. Try again.") {
		t.Errorf("output missing retry message:\n%s", got)
	}
	if !strings.Contains(got, "[Enter] Try Again") {
		t.Errorf("output missing retry hint:\n%s", got)
	}
	if strings.Count(got, "🍎  apple") != 2 {
		t.Errorf("question should be shown twice:\n%s", got)
	}
	if !strings.Contains(got, quiz.CompletedMessage) {
		t.Errorf("output missing completion message:\n%s", got)
	}
}

func TestPlay_Quit(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("q\n"), &out)
	d := quiz.NewDriver(testVocab(), c, quiz.DriverOptions{})

	if err := c.Play(d, vocab.ModeKatakana); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if d.Session().Phase() != quiz.PhaseIdle {
		t.Errorf("Phase() after quit = %s, want idle", d.Session().Phase())
	}
	if !strings.Contains(out.String(), "Bye!") {
		t.Error("missing goodbye")
	}
}

func TestPlay_EOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)
	d := quiz.NewDriver(testVocab(), c, quiz.DriverOptions{})
	if err := c.Play(d, vocab.ModeHiragana); err != nil {
		t.Fatalf("Play: %v", err)
	}
}

func TestPlay_UnavailableMode(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{})
	d := quiz.NewDriver(testVocab(), c, quiz.DriverOptions{})
	if err := c.Play(d, vocab.ModeFood); err == nil {
		t.Error("Play(food) without food data should fail")
	}
}

func TestParseChoice(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{})
	c.RenderOptions([]string{"a", "b", "c", "d"})

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "a", true},
		{"4", "d", true},
		{"0", "", false},
		{"5", "", false},
		{"c", "c", true},
		{"x", "", false},
	}
	for _, tt := range tests {
		got, ok := c.parseChoice(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseChoice(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderStartScreen(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)
	c.RenderStartScreen(testVocab().AvailableModes())
	got := out.String()
	if !strings.Contains(got, "hiragana") || !strings.Contains(got, "2 questions") {
		t.Errorf("start screen = %q", got)
	}
	if !strings.Contains(got, "unavailable") {
		t.Errorf("food mode should be marked unavailable: %q", got)
	}
}
