package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerExtendReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base", "5", "20000")

	mgr, err := Open(path)
	require.NoError(t, err)
	defer mgr.Close()

	pageNo, err := mgr.Extend()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), pageNo)
	assert.Equal(t, uint32(1), mgr.Size())

	payload := make([]byte, PageSize)
	copy(payload, []byte("manager round trip"))
	require.NoError(t, mgr.Write(pageNo, payload))

	out := make([]byte, PageSize)
	require.NoError(t, mgr.Read(pageNo, out))
	assert.Equal(t, payload, out)
}
