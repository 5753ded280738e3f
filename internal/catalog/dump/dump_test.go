package dump

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/catalog"
	"github.com/tinydb/engine/internal/oid"
)

func TestWriteProducesValidLZ4Stream(t *testing.T) {
	oid.Reset()
	dataDir := t.TempDir()
	pool := buffer.New(16)

	cat, err := catalog.Bootstrap(dataDir, pool, "tinydb")
	require.NoError(t, err)
	defer cat.Close()

	var out bytes.Buffer
	require.NoError(t, Write(dataDir, cat, &out))
	require.True(t, out.Len() > 0)

	var decoded bytes.Buffer
	lr := lz4.NewReader(&out)
	_, err = decoded.ReadFrom(lr)
	require.NoError(t, err)
	require.True(t, decoded.Len() > 0)
}
