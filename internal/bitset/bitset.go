package bitset

import "math/bits"

// BitSet is a fixed-size bit mask backed by 64-bit words. Out-of-range
// indexes are ignored: Set and Unset are no-ops, Test reports false. Not
// safe for concurrent mutation.
type BitSet struct {
	length int
	words  []uint64
}

// New creates a new BitSet with the given size (in bits), all bits unset.
func New(length int) *BitSet {
	if length < 0 {
		length = 0
	}

	return &BitSet{
		length: length,
		words:  make([]uint64, WordCount(length)),
	}
}

// FromWords creates a BitSet of the given length over a copy of words,
// least significant bit first. Surplus words and bits beyond length are
// dropped.
func FromWords(words []uint64, length int) *BitSet {
	b := New(length)
	copy(b.words, words)
	b.trim()
	return b
}

// WordCount returns the number of 64-bit words backing a bitset of the
// given length.
func WordCount(length int) int {
	if length <= 0 {
		return 0
	}

	return (length + 63) / 64
}

// trim clears bits beyond length in the last word.
func (b *BitSet) trim() {
	if rem := b.length & 63; rem != 0 && len(b.words) > 0 {
		b.words[len(b.words)-1] &= (1 << rem) - 1
	}
}

// Set sets the bit at the given index.
func (b *BitSet) Set(i int) {
	if i < 0 || i >= b.length {
		return
	}

	b.words[i>>6] |= 1 << (i & 63)
}

// Unset clears the bit at the given index.
func (b *BitSet) Unset(i int) {
	if i < 0 || i >= b.length {
		return
	}

	b.words[i>>6] &^= 1 << (i & 63)
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}

	return b.words[i>>6]&(1<<(i&63)) != 0
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}

	return count
}

// ClearAll clears all bits in the bitset.
func (b *BitSet) ClearAll() {
	clear(b.words)
}

// Len returns the size of the bitset in bits.
func (b *BitSet) Len() int {
	return b.length
}

// Words returns a copy of the backing words, least significant bit first.
func (b *BitSet) Words() []uint64 {
	out := make([]uint64, len(b.words))
	copy(out, b.words)
	return out
}

// Clone returns an independent copy of the bitset.
func (b *BitSet) Clone() *BitSet {
	return &BitSet{
		length: b.length,
		words:  b.Words(),
	}
}
