package distractor

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/kanaz/internal/kana"
)

// OptionCount is the number of choices in an option set.
const OptionCount = 4

// ErrInsufficientDistractors is wrapped by InsufficientDistractorsError.
var ErrInsufficientDistractors = errors.New("insufficient distractors")

// InsufficientDistractorsError reports an answer for which fewer than
// OptionCount-1 distinct near-misses exist in the pool.
type InsufficientDistractorsError struct {
	Answer string
	Script kana.Script
	Found  int
}

func (e *InsufficientDistractorsError) Error() string {
	return fmt.Sprintf("%s: found %d of %d for %s %q",
		ErrInsufficientDistractors, e.Found, OptionCount-1, e.Script, e.Answer)
}

func (e *InsufficientDistractorsError) Unwrap() error {
	return ErrInsufficientDistractors
}

// Builder assembles shuffled option sets of one answer and three distinct
// distractors.
type Builder struct {
	gen         *Generator
	rng         *rand.Rand
	maxAttempts int
}

// NewBuilder creates a Builder. A nil rng uses a randomly seeded source.
func NewBuilder(pools kana.Pools, rng *rand.Rand, opts ...Option) *Builder {
	o := buildOptions(opts)
	if rng == nil {
		rng = NewRand(0)
	}
	return &Builder{
		gen:         NewGenerator(pools, rng, opts...),
		rng:         rng,
		maxAttempts: o.maxAttempts,
	}
}

// Generator returns the underlying distractor generator.
func (b *Builder) Generator() *Generator {
	return b.gen
}

// Build returns OptionCount unique strings in random order, one of which is
// answer. Draws at the primary substitution index are capped; when the cap
// is reached the other indices are tried, substitutable runes first. If the
// set still cannot be filled, the partial shuffled set is returned with an
// *InsufficientDistractorsError.
func (b *Builder) Build(answer string, script kana.Script) ([]string, error) {
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	set := newOptionSet(answer)
	primary := b.gen.SubstitutionIndex(answer, script)
	b.collect(set, answer, script, primary)

	if !set.full() {
		for _, idx := range b.wideningOrder(answer, script, primary) {
			b.collect(set, answer, script, idx)
			if set.full() {
				break
			}
		}
	}

	out := set.items
	b.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if !set.full() {
		return out, &InsufficientDistractorsError{
			Answer: answer,
			Script: script,
			Found:  len(out) - 1,
		}
	}
	return out, nil
}

func (b *Builder) collect(set *optionSet, answer string, script kana.Script, idx int) {
	for attempt := 0; attempt < b.maxAttempts && !set.full(); attempt++ {
		c, err := b.gen.GenerateAt(answer, script, idx)
		if err != nil {
			return
		}
		set.add(c)
	}
}

// wideningOrder lists every index except primary, substitutable runes
// before excluded ones.
func (b *Builder) wideningOrder(answer string, script kana.Script, primary int) []int {
	var preferred, excluded []int
	i := 0
	for _, r := range answer {
		switch {
		case i == primary:
		case b.gen.exclusions.Substitutable(script, r):
			preferred = append(preferred, i)
		default:
			excluded = append(excluded, i)
		}
		i++
	}
	return append(preferred, excluded...)
}

type optionSet struct {
	items []string
	seen  map[string]struct{}
}

func newOptionSet(answer string) *optionSet {
	return &optionSet{
		items: append(make([]string, 0, OptionCount), answer),
		seen:  map[string]struct{}{answer: {}},
	}
}

func (s *optionSet) add(c string) {
	if _, ok := s.seen[c]; ok {
		return
	}
	s.seen[c] = struct{}{}
	s.items = append(s.items, c)
}

func (s *optionSet) full() bool {
	return len(s.items) >= OptionCount
}
