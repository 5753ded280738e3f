package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUReplacerVictimOrderMatchesUnpinOrder(t *testing.T) {
	r := newLRUReplacer(4)

	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)

	v1, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, 1, v1)

	v2, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, 2, v2)

	v3, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, 3, v3)

	_, ok = r.Victim()
	assert.False(t, ok)
}

func TestLRUReplacerPinRemovesFromEvictionOrder(t *testing.T) {
	r := newLRUReplacer(4)

	r.Unpin(1)
	r.Unpin(2)
	r.Pin(1)

	v, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, r.Len())
}

func TestLRUReplacerUnpinIsIdempotent(t *testing.T) {
	r := newLRUReplacer(4)

	r.Unpin(1)
	r.Unpin(1)
	assert.Equal(t, 1, r.Len())

	v, ok := r.Victim()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRUReplacerPinOnAbsentFrameIsNoop(t *testing.T) {
	r := newLRUReplacer(4)
	r.Pin(42)
	assert.Equal(t, 0, r.Len())
}
