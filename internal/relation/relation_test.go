package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/oid"
)

func TestOpenCreatesUnderlyingFileAndEmptyStorage(t *testing.T) {
	dataDir := t.TempDir()
	loc := Locator{Tablespace: oid.DefaultTablespace, Database: 5, OID: 10050}

	rel, err := Open(dataDir, "widgets", loc)
	require.NoError(t, err)
	defer rel.Storage.Close()

	assert.Equal(t, "widgets", rel.Name)
	assert.Equal(t, loc, rel.Locator)
	assert.Equal(t, uint32(0), rel.Storage.Size())
}
