package vocab

import (
	"fmt"
	"strings"

	"github.com/abhisek/kanaz/internal/kana"
)

// Vocabulary is the loaded, normalized data for every mode. It is read-only
// after construction and safe to share between sessions.
type Vocabulary struct {
	entries   []VocabularyEntry
	food      []FoodEntry
	questions map[Mode][]Question
	pools     kana.Pools

	// Failures lists the datasets that could not be loaded.
	Failures []*LoadError
}

// New normalizes the given entries, flattens them into questions and derives
// the alphabet pools.
func New(entries []VocabularyEntry, food []FoodEntry) *Vocabulary {
	v := &Vocabulary{
		entries:   make([]VocabularyEntry, len(entries)),
		food:      make([]FoodEntry, len(food)),
		questions: make(map[Mode][]Question, len(AllModes())),
	}
	for i, e := range entries {
		v.entries[i] = VocabularyEntry{
			Emoji:       strings.TrimSpace(e.Emoji),
			Description: strings.TrimSpace(e.Description),
			Kana:        normalizeReading(e.Kana),
		}
	}
	for i, f := range food {
		v.food[i] = FoodEntry{
			Emoji:            strings.TrimSpace(f.Emoji),
			SentenceHiragana: strings.TrimSpace(f.SentenceHiragana),
			SentenceKatakana: strings.TrimSpace(f.SentenceKatakana),
			Kana:             normalizeReading(f.Kana),
		}
	}

	v.flatten()
	v.derivePools()
	return v
}

func normalizeReading(r Reading) Reading {
	return Reading{
		Hiragana: kana.Normalize(r.Hiragana),
		Katakana: kana.Normalize(r.Katakana),
	}
}

func (v *Vocabulary) flatten() {
	for _, s := range kana.AllScripts() {
		mode := ModeHiragana
		if s == kana.Katakana {
			mode = ModeKatakana
		}
		for _, e := range v.entries {
			answer := e.Kana.For(s)
			if answer == "" {
				continue
			}
			v.questions[mode] = append(v.questions[mode], Question{
				Emoji:  e.Emoji,
				Prompt: e.Description,
				Answer: answer,
				Script: s,
			})
		}
	}

	for _, f := range v.food {
		for _, s := range kana.AllScripts() {
			answer := f.Kana.For(s)
			if answer == "" {
				continue
			}
			v.questions[ModeFood] = append(v.questions[ModeFood], Question{
				Emoji:  f.Emoji,
				Prompt: f.Sentence(s),
				Answer: answer,
				Script: s,
			})
		}
	}
}

// derivePools scans every answer of both datasets. Food answers feed the
// same pools as kana answers.
func (v *Vocabulary) derivePools() {
	v.pools = kana.NewPools()
	for _, s := range kana.AllScripts() {
		for _, e := range v.entries {
			v.pools[s].AddString(e.Kana.For(s))
		}
		for _, f := range v.food {
			v.pools[s].AddString(f.Kana.For(s))
		}
	}
}

// Entries returns the normalized kana dataset.
func (v *Vocabulary) Entries() []VocabularyEntry {
	return v.entries
}

// Food returns the normalized food dataset.
func (v *Vocabulary) Food() []FoodEntry {
	return v.food
}

// Questions returns a copy of the unshuffled questions for mode.
func (v *Vocabulary) Questions(mode Mode) []Question {
	src := v.questions[mode]
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// Pool returns the alphabet pool for a script.
func (v *Vocabulary) Pool(s kana.Script) *kana.AlphabetPool {
	return v.pools[s]
}

// Pools returns every alphabet pool.
func (v *Vocabulary) Pools() kana.Pools {
	return v.pools
}

// AvailableModes reports every mode and whether it has questions.
func (v *Vocabulary) AvailableModes() []ModeAvailability {
	modes := AllModes()
	out := make([]ModeAvailability, len(modes))
	for i, m := range modes {
		n := len(v.questions[m])
		out[i] = ModeAvailability{Mode: m, Available: n > 0, Questions: n}
	}
	return out
}

// CheckMode returns an error if mode cannot be started.
func (v *Vocabulary) CheckMode(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	if len(v.questions[mode]) == 0 {
		return fmt.Errorf("%w: %s", ErrDataUnavailable, mode)
	}
	return nil
}

// Failure returns the load failure for a dataset, if any.
func (v *Vocabulary) Failure(ds Dataset) *LoadError {
	for _, f := range v.Failures {
		if f.Dataset == ds {
			return f
		}
	}
	return nil
}
