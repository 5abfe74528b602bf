package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/kanaz/internal/vocab"
)

// PopupKind distinguishes the completion popup from the retry popup.
type PopupKind int

const (
	PopupSuccess PopupKind = iota
	PopupFail
)

func (k PopupKind) String() string {
	if k == PopupFail {
		return "fail"
	}
	return "success"
}

// Popup messages.
const (
	CompletedMessage  = "Congratulations! You completed the quiz! 🎉🎊"
	wrongAnswerFormat = "Wrong answer! The answer was %s. Try again."
)

// WrongAnswerMessage returns the retry popup text for a missed question.
func WrongAnswerMessage(correctAnswer string) string {
	return fmt.Sprintf(wrongAnswerFormat, correctAnswer)
}

// Presenter renders quiz state. Implementations only draw; user input is
// fed back through Driver.Select and Driver.Dismiss.
type Presenter interface {
	RenderStartScreen(modes []vocab.ModeAvailability)
	RenderPrompt(emoji, description string)
	RenderOptions(choices []string)
	RenderProgress(position, total, stars int)
	RenderPopup(message string, kind PopupKind)
}

// Stars renders n star glyphs.
func Stars(n int) string {
	return strings.Repeat("⭐", n)
}

// FormatProgress renders the progress line shown under each question.
func FormatProgress(position, total, stars int) string {
	current := position + 1
	if current > total {
		current = total
	}
	return fmt.Sprintf("Question %d / %d | Stars: %s", current, total, Stars(stars))
}
