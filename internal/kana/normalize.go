package kana

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// spacing voiced marks are folded into their combining forms so that NFC
// can compose them with the preceding kana.
var markReplacer = strings.NewReplacer(
	"\u309b", "\u3099",
	"\u309c", "\u309a",
)

// Normalize returns s with half-width katakana widened, voiced marks
// composed (NFC) and surrounding whitespace removed. Answers are compared
// and substituted rune by rune, so they must be normalized first.
func Normalize(s string) string {
	s = width.Widen.String(s)
	s = markReplacer.Replace(s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

// Foreign returns the runes of s that belong to neither kana script
// expected for it. The prolonged sound mark is allowed in both scripts.
func Foreign(s string, script Script) []rune {
	table := unicode.Hiragana
	if script == Katakana {
		table = unicode.Katakana
	}
	var out []rune
	for _, r := range s {
		if r == 'ー' || unicode.Is(table, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
