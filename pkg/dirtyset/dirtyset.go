package dirtyset

import "math/bits"

const wordBits = 64

// Set is a packed bitset over topological indices [0, n).
type Set struct {
	words []uint64
	n     int
}

// New returns an empty Set sized for n nodes.
func New(n int) *Set {
	return &Set{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		n:     n,
	}
}

// Len returns the number of addressable bits.
func (s *Set) Len() int {
	return s.n
}

// Set marks index i dirty.
func (s *Set) Set(i int) {
	s.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// Clear marks index i clean.
func (s *Set) Clear(i int) {
	s.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Test reports whether index i is dirty.
func (s *Set) Test(i int) bool {
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// SetAll marks every index dirty, used to initialize the first pass.
func (s *Set) SetAll() {
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.trimTail()
}

// ClearAll marks every index clean.
func (s *Set) ClearAll() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// trimTail zeroes the bits beyond n in the final word so SetAll and a
// full-word scan never report indices >= n as dirty.
func (s *Set) trimTail() {
	if s.n%wordBits == 0 || len(s.words) == 0 {
		return
	}
	lastWord := len(s.words) - 1
	validBits := uint(s.n % wordBits)
	mask := (uint64(1) << validBits) - 1
	s.words[lastWord] &= mask
}

// Any reports whether any bit is set.
func (s *Set) Any() bool {
	for _, w := range s.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Cursor walks a Set word-at-a-time, yielding the index of each set
// bit in ascending order and skipping whole empty words.
type Cursor struct {
	set       *Set
	wordIdx   int
	remaining uint64
}

// NewCursor returns a Cursor positioned before the first bit of s.
func NewCursor(s *Set) *Cursor {
	return &Cursor{set: s, wordIdx: -1}
}

// Next advances the cursor and reports whether another dirty index
// was found. On success, idx holds that index.
func (c *Cursor) Next() (idx int, ok bool) {
	for c.remaining == 0 {
		c.wordIdx++
		if c.wordIdx >= len(c.set.words) {
			return 0, false
		}
		c.remaining = c.set.words[c.wordIdx]
	}
	bit := bits.TrailingZeros64(c.remaining)
	c.remaining &^= 1 << uint(bit)
	return c.wordIdx*wordBits + bit, true
}
