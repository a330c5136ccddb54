package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGrowAndAccess(t *testing.T) {
	m, err := NewMemory(1, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, m.Size())

	m.Store32(0, 0, 0xdeadbeef)
	assert.EqualValues(t, 0xdeadbeef, m.Load32(0, 0))

	prev, err := m.Grow(1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, prev)
	assert.EqualValues(t, 2, m.Size())
}

func TestMemoryGrowBeyondMaxFails(t *testing.T) {
	m, err := NewMemory(1, 1)
	assert.NoError(t, err)

	_, err = m.Grow(1)
	assert.ErrorIs(t, err, ErrGrowLimitExceeded)
}

func TestMemoryZeroExtendedAddress(t *testing.T) {
	m, err := NewMemory(1, 1)
	assert.NoError(t, err)

	// An address whose 16-bit form has the high bit set (0x8000) reaches
	// the same byte through Store8 and Load8: effectiveAddr adds addr and
	// offset as unsigned values.
	m.Store8(0x8000, 0, 0x42)
	assert.EqualValues(t, 0x42, m.Load8(0x8000, 0))
}
