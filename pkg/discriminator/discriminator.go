// Package discriminator computes and matches the 8-byte instruction
// discriminators that prefix Anchor instruction data.
package discriminator

import (
	"encoding/hex"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Size is the length of an Anchor discriminator in bytes.
const Size = 8

// Discriminator is the 8-byte prefix selecting an Anchor instruction.
type Discriminator [Size]byte

// ForInstruction returns sha256("global:<name>")[:8], the discriminator Anchor
// assigns to the instruction handler called name.
func ForInstruction(name string) Discriminator {
	var d Discriminator
	copy(d[:], bin.Sighash(bin.SIGHASH_GLOBAL_NAMESPACE, name))
	return d
}

// FromBytes reads the discriminator at the start of data.
func FromBytes(data []byte) (Discriminator, error) {
	var d Discriminator
	if len(data) < Size {
		return d, fmt.Errorf("insufficient data for discriminator: need %d bytes, got %d", Size, len(data))
	}
	copy(d[:], data[:Size])
	return d, nil
}

// Bytes returns the discriminator as a byte slice.
func (d Discriminator) Bytes() []byte {
	return d[:]
}

// String returns the hex form of the discriminator.
func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}

// Matcher maps discriminators to the index they were registered at.
type Matcher struct {
	index   map[Discriminator]int
	ordered []Discriminator
}

// NewMatcher creates a Matcher over discs. Index i in discs matches to i.
func NewMatcher(discs ...Discriminator) *Matcher {
	m := &Matcher{
		index:   make(map[Discriminator]int, len(discs)),
		ordered: make([]Discriminator, len(discs)),
	}
	for i, disc := range discs {
		if _, exists := m.index[disc]; !exists {
			m.index[disc] = i
		}
		m.ordered[i] = disc
	}
	return m
}

// Match returns the index of target, or -1 when it is unknown.
func (m *Matcher) Match(target Discriminator) int {
	if idx, exists := m.index[target]; exists {
		return idx
	}
	return -1
}

// MatchData matches the discriminator prefixing data.
func (m *Matcher) MatchData(data []byte) int {
	d, err := FromBytes(data)
	if err != nil {
		return -1
	}
	return m.Match(d)
}

// Len returns the number of registered discriminators.
func (m *Matcher) Len() int {
	return len(m.ordered)
}
