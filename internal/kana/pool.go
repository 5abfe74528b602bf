package kana

// AlphabetPool is the set of distinct runes seen in the answers of one
// script. Runes keep their first-seen order so that seeded draws are
// reproducible.
type AlphabetPool struct {
	runes []rune
	index map[rune]int
}

// NewAlphabetPool creates an empty pool.
func NewAlphabetPool() *AlphabetPool {
	return &AlphabetPool{index: make(map[rune]int)}
}

// Add inserts r if it is not already present.
func (p *AlphabetPool) Add(r rune) {
	if _, ok := p.index[r]; ok {
		return
	}
	p.index[r] = len(p.runes)
	p.runes = append(p.runes, r)
}

// AddString inserts every rune of s.
func (p *AlphabetPool) AddString(s string) {
	for _, r := range s {
		p.Add(r)
	}
}

// Len returns the number of distinct runes.
func (p *AlphabetPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.runes)
}

// At returns the rune at position i in first-seen order.
func (p *AlphabetPool) At(i int) rune {
	return p.runes[i]
}

// IndexOf returns the position of r, or false if r is not in the pool.
func (p *AlphabetPool) IndexOf(r rune) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := p.index[r]
	return i, ok
}

// Contains reports whether r is in the pool.
func (p *AlphabetPool) Contains(r rune) bool {
	_, ok := p.IndexOf(r)
	return ok
}

// Runes returns a copy of the pool contents.
func (p *AlphabetPool) Runes() []rune {
	if p == nil {
		return nil
	}
	out := make([]rune, len(p.runes))
	copy(out, p.runes)
	return out
}

// String renders the pool as a single string.
func (p *AlphabetPool) String() string {
	if p == nil {
		return ""
	}
	return string(p.runes)
}

// Pools holds one AlphabetPool per script.
type Pools map[Script]*AlphabetPool

// NewPools creates an empty pool for every script.
func NewPools() Pools {
	pools := make(Pools, len(AllScripts()))
	for _, s := range AllScripts() {
		pools[s] = NewAlphabetPool()
	}
	return pools
}
