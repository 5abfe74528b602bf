package kana

// Exclusions maps a script to the rune that is never substituted on its own
// when a near-miss spelling is generated.
type Exclusions map[Script]rune

// DefaultExclusions excludes the terminal nasal of each script.
var DefaultExclusions = Exclusions{
	Hiragana: 'ん',
	Katakana: 'ン',
}

// Substitutable reports whether r may be replaced in a word of script s.
func (e Exclusions) Substitutable(s Script, r rune) bool {
	excluded, ok := e[s]
	return !ok || excluded != r
}
