package vocab

import (
	"errors"
	"fmt"

	"github.com/abhisek/kanaz/internal/kana"
)

// ErrUnknownMode is returned when a mode name is not recognized.
var ErrUnknownMode = errors.New("unknown mode")

// ErrDataUnavailable is returned when the dataset backing a mode is empty.
var ErrDataUnavailable = errors.New("no data available for mode")

// Reading holds the spelling of a word in both kana scripts.
type Reading struct {
	Hiragana string `json:"hiragana"`
	Katakana string `json:"katakana"`
}

// For returns the spelling for the given script.
func (r Reading) For(s kana.Script) string {
	if s == kana.Katakana {
		return r.Katakana
	}
	return r.Hiragana
}

// VocabularyEntry is one record of the kana dataset.
type VocabularyEntry struct {
	Emoji       string  `json:"emoji"`
	Description string  `json:"description"`
	Kana        Reading `json:"kana"`
}

// FoodEntry is one record of the food dataset. Each entry expands into one
// question per script.
type FoodEntry struct {
	Emoji            string  `json:"emoji"`
	SentenceHiragana string  `json:"foodsentence1"`
	SentenceKatakana string  `json:"foodsentence2"`
	Kana             Reading `json:"kana"`
}

// Sentence returns the prompt sentence for the given script.
func (f FoodEntry) Sentence(s kana.Script) string {
	if s == kana.Katakana {
		return f.SentenceKatakana
	}
	return f.SentenceHiragana
}

// Question is the unit a quiz session schedules.
type Question struct {
	Emoji  string      `json:"emoji"`
	Prompt string      `json:"prompt"`
	Answer string      `json:"answer"`
	Script kana.Script `json:"script"`
}

// Dataset names one of the two input documents.
type Dataset string

const (
	KanaDataset Dataset = "kana"
	FoodDataset Dataset = "food"
)

// Mode is the category being quizzed.
type Mode string

const (
	ModeHiragana Mode = "hiragana"
	ModeKatakana Mode = "katakana"
	ModeFood     Mode = "food"
)

// AllModes returns every mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeHiragana, ModeKatakana, ModeFood}
}

// ParseMode parses a mode name.
func ParseMode(v string) (Mode, error) {
	m := Mode(v)
	switch m {
	case ModeHiragana, ModeKatakana, ModeFood:
		return m, nil
	}
	return "", fmt.Errorf("%w %q: must be hiragana, katakana or food", ErrUnknownMode, v)
}

// Dataset returns the dataset that backs the mode.
func (m Mode) Dataset() Dataset {
	if m == ModeFood {
		return FoodDataset
	}
	return KanaDataset
}

// Script returns the single script quizzed by a kana mode. Food mode mixes
// both scripts and reports false.
func (m Mode) Script() (kana.Script, bool) {
	switch m {
	case ModeHiragana:
		return kana.Hiragana, true
	case ModeKatakana:
		return kana.Katakana, true
	}
	return "", false
}

// DisplayName returns the menu label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeHiragana:
		return "Hiragana ひらがな"
	case ModeKatakana:
		return "Katakana カタカナ"
	case ModeFood:
		return "Food たべもの"
	}
	return string(m)
}

// ModeAvailability reports whether a mode can be started.
type ModeAvailability struct {
	Mode      Mode
	Available bool
	Questions int
}
