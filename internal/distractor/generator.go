// Package distractor builds near-miss spellings of kana answers and the
// multiple-choice option sets that contain them.
package distractor

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/kanaz/internal/kana"
)

var (
	// ErrEmptyAnswer is returned for an empty answer string.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrDegeneratePool is returned when the pool has no rune other than the
	// one being replaced.
	ErrDegeneratePool = errors.New("alphabet pool has no alternative rune")
)

// DefaultMaxAttempts caps the draws made while collecting distractors.
const DefaultMaxAttempts = 64

// Option configures a Generator or Builder.
type Option func(*options)

type options struct {
	exclusions  kana.Exclusions
	maxAttempts int
}

// WithExclusions replaces the non-substitutable rune table.
func WithExclusions(e kana.Exclusions) Option {
	return func(o *options) {
		o.exclusions = e
	}
}

// WithMaxAttempts sets the draw cap used by Build. Values below 1 keep the
// default.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		exclusions:  kana.DefaultExclusions,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRand returns a PCG-backed source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces strings that differ from an answer by one rune.
type Generator struct {
	pools      kana.Pools
	exclusions kana.Exclusions
	rng        *rand.Rand
}

// NewGenerator creates a Generator drawing from pools. A nil rng uses a
// randomly seeded source.
func NewGenerator(pools kana.Pools, rng *rand.Rand, opts ...Option) *Generator {
	o := buildOptions(opts)
	if rng == nil {
		rng = NewRand(0)
	}
	return &Generator{pools: pools, exclusions: o.exclusions, rng: rng}
}

// SubstitutionIndex returns the index of the first substitutable rune of
// answer, or 0 when every rune is excluded.
func (g *Generator) SubstitutionIndex(answer string, script kana.Script) int {
	i := 0
	for _, r := range answer {
		if g.exclusions.Substitutable(script, r) {
			return i
		}
		i++
	}
	return 0
}

// Generate replaces the first substitutable rune of answer with a different
// rune drawn uniformly from the script's pool.
func (g *Generator) Generate(answer string, script kana.Script) (string, error) {
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return g.GenerateAt(answer, script, g.SubstitutionIndex(answer, script))
}

// GenerateAt replaces the rune at index with a different rune drawn
// uniformly from the script's pool.
func (g *Generator) GenerateAt(answer string, script kana.Script, index int) (string, error) {
	runes := []rune(answer)
	if len(runes) == 0 {
		return "", ErrEmptyAnswer
	}
	if index < 0 || index >= len(runes) {
		return "", fmt.Errorf("substitution index %d out of range for %q", index, answer)
	}

	pool := g.pools[script]
	orig := runes[index]
	n := pool.Len()
	skip, inPool := pool.IndexOf(orig)
	if inPool {
		n--
	}
	if n < 1 {
		return "", fmt.Errorf("%w: %s rune %q", ErrDegeneratePool, script, orig)
	}

	// Drawing from the pool minus the original is the same distribution as
	// redrawing until the rune differs.
	j := g.rng.IntN(n)
	if inPool && j >= skip {
		j++
	}
	runes[index] = pool.At(j)
	return string(runes), nil
}
