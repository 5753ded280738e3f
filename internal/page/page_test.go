package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/dbctx/errs"
)

func TestDefaultHeaderMatchesFreshPage(t *testing.T) {
	buf := make([]byte, Size)
	Init(buf)

	h := ReadHeader(buf)
	assert.Equal(t, DefaultHeader(), h)
	assert.Equal(t, Size-HeaderSize, h.FreeSpace())
}

func TestAddItemGrowsFromBothEnds(t *testing.T) {
	buf := make([]byte, Size)
	Init(buf)

	before := ReadHeader(buf)

	slot, err := AddItem(buf, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	after := ReadHeader(buf)
	assert.Equal(t, before.StartFreeSpace+itemIDSize, after.StartFreeSpace)
	assert.Equal(t, before.EndFreeSpace-uint16(len("hello")), after.EndFreeSpace)
}

func TestAddItemReturnsSequentialOneBasedSlots(t *testing.T) {
	buf := make([]byte, Size)
	Init(buf)

	s1, err := AddItem(buf, []byte("a"))
	require.NoError(t, err)
	s2, err := AddItem(buf, []byte("bb"))
	require.NoError(t, err)
	s3, err := AddItem(buf, []byte("ccc"))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, []int{s1, s2, s3})

	ids := ItemIDs(buf)
	require.Len(t, ids, 3)
	assert.Equal(t, []byte("a"), ReadItem(buf, ids[0]))
	assert.Equal(t, []byte("bb"), ReadItem(buf, ids[1]))
	assert.Equal(t, []byte("ccc"), ReadItem(buf, ids[2]))
}

func TestAddItemFailsWhenPageIsFull(t *testing.T) {
	buf := make([]byte, Size)
	Init(buf)

	big := make([]byte, Size) // certainly too big once header + item id are accounted for
	_, err := AddItem(buf, big)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.PageFull))
}

func TestAddItemPacksUntilExactlyFull(t *testing.T) {
	buf := make([]byte, Size)
	Init(buf)

	var count int
	for {
		_, err := AddItem(buf, []byte{0xAB})
		if err != nil {
			require.True(t, errs.Is(err, errs.PageFull))
			break
		}
		count++
	}

	// Each item consumes itemIDSize (line pointer) + 1 (payload) bytes.
	assert.Equal(t, (Size-HeaderSize)/(itemIDSize+1), count)
}
