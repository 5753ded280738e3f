package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/heap/datum"
	"github.com/tinydb/engine/internal/oid"
	"github.com/tinydb/engine/internal/relation"
)

func openTestRelation(t *testing.T) *relation.Relation {
	t.Helper()
	dataDir := t.TempDir()
	loc := relation.Locator{Tablespace: oid.DefaultTablespace, Database: 5, OID: 10500}
	rel, err := relation.Open(dataDir, "widgets", loc)
	require.NoError(t, err)
	t.Cleanup(func() { rel.Storage.Close() })
	return rel
}

func TestInsertThenScanPreservesOrder(t *testing.T) {
	rel := openTestRelation(t)
	pool := buffer.New(8)
	desc := testDesc()

	for i, name := range []string{"alpha", "bravo", "charlie"} {
		values := []datum.Datum{datum.EncodeInt(int32(i)), datum.EncodeVarchar(name), datum.EncodeBool(i%2 == 0)}
		tuple, err := FromDatums(values, desc)
		require.NoError(t, err)
		require.NoError(t, Insert(pool, rel, tuple))
	}

	tuples, err := Scan(pool, rel)
	require.NoError(t, err)
	require.Len(t, tuples, 3)

	var names []string
	for _, tp := range tuples {
		b, err := GetAttr(tp, 2, desc)
		require.NoError(t, err)
		names = append(names, datum.DecodeVarchar(b))
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names)
}

func TestInsertAllocatesNewPageWhenFull(t *testing.T) {
	rel := openTestRelation(t)
	pool := buffer.New(8)
	desc := TupleDesc{Attrs: []Attribute{{AttName: "blob", AttNum: 1, AttLen: -1, AttTypID: oid.TypeVarchar}}}

	big := make([]byte, 6000)
	for i := range big {
		big[i] = 'x'
	}

	for i := 0; i < 3; i++ {
		tuple, err := FromDatums([]datum.Datum{datum.EncodeVarchar(string(big))}, desc)
		require.NoError(t, err)
		require.NoError(t, Insert(pool, rel, tuple))
	}

	assert.Greater(t, rel.Storage.Size(), uint32(1))

	tuples, err := Scan(pool, rel)
	require.NoError(t, err)
	assert.Len(t, tuples, 3)
}
