package kana

import "fmt"

// Script identifies one of the two kana writing systems.
type Script string

const (
	Hiragana Script = "hiragana"
	Katakana Script = "katakana"
)

// AllScripts returns the scripts in display order.
func AllScripts() []Script {
	return []Script{Hiragana, Katakana}
}

// Valid reports whether s is a known script.
func (s Script) Valid() bool {
	return s == Hiragana || s == Katakana
}

// DisplayName returns the script name written in the script itself.
func (s Script) DisplayName() string {
	switch s {
	case Hiragana:
		return "ひらがな"
	case Katakana:
		return "カタカナ"
	default:
		return string(s)
	}
}

// ParseScript parses a script name as used in flags and datasets.
func ParseScript(v string) (Script, error) {
	s := Script(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown script %q: must be hiragana or katakana", v)
	}
	return s, nil
}
