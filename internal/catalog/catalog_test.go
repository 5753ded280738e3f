package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/heap"
	"github.com/tinydb/engine/internal/heap/datum"
	"github.com/tinydb/engine/internal/oid"
)

func bootstrapTestCatalog(t *testing.T) (*Catalog, *buffer.Pool) {
	t.Helper()
	oid.Reset()
	dataDir := t.TempDir()
	pool := buffer.New(32)
	cat, err := Bootstrap(dataDir, pool, "tinydb")
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat, pool
}

func TestBootstrapRegistersAllFourCatalogsInPgClass(t *testing.T) {
	cat, _ := bootstrapTestCatalog(t)

	rows, err := cat.ScanPgClass()
	require.NoError(t, err)

	names := make(map[string]PgClassRow)
	for _, r := range rows {
		names[r.RelName] = r
	}

	for _, want := range []string{"pg_attribute", "pg_class", "pg_database", "pg_tablespace"} {
		row, ok := names[want]
		assert.Truef(t, ok, "expected %q in pg_class", want)
		if want == "pg_database" || want == "pg_tablespace" {
			assert.True(t, row.RelIsShared, "%q should be relisshared", want)
		} else {
			assert.False(t, row.RelIsShared, "%q should not be relisshared", want)
		}
	}
}

func TestBootstrapSeedsPgAttributeForItself(t *testing.T) {
	cat, _ := bootstrapTestCatalog(t)

	attrs, err := cat.ScanPgAttribute(oid.PgAttribute)
	require.NoError(t, err)
	assert.Len(t, attrs, len(PgAttributeDesc().Attrs))
}

func TestGetOIDForRelationResolvesWellKnownCatalogs(t *testing.T) {
	cat, _ := bootstrapTestCatalog(t)

	got, err := cat.GetOIDForRelation("pg_class")
	require.NoError(t, err)
	assert.Equal(t, oid.PgClass, got)
}

func TestGetOIDForRelationUnknownNameFails(t *testing.T) {
	cat, _ := bootstrapTestCatalog(t)

	_, err := cat.GetOIDForRelation("does_not_exist")
	assert.Error(t, err)
}

func TestTupleDescForRelationShortCircuitsWellKnownNames(t *testing.T) {
	cat, _ := bootstrapTestCatalog(t)

	desc, err := cat.TupleDescForRelation("pg_tablespace")
	require.NoError(t, err)
	assert.Equal(t, PgTablespaceDesc(), desc)
}

func TestHeapCreateRegistersAndIsInsertable(t *testing.T) {
	cat, pool := bootstrapTestCatalog(t)

	desc := heap.TupleDesc{Attrs: []heap.Attribute{
		{AttName: "id", AttNum: 1, AttLen: 4, AttTypID: oid.TypeInt},
		{AttName: "name", AttNum: 2, AttLen: -1, AttTypID: oid.TypeVarchar},
	}}

	newOID, err := cat.NewRelationOID(oid.DefaultTablespace)
	require.NoError(t, err)
	rel, err := cat.HeapCreate(oid.DefaultTablespace, "widgets", newOID, desc)
	require.NoError(t, err)

	gotOID, err := cat.GetOIDForRelation("widgets")
	require.NoError(t, err)
	assert.Equal(t, newOID, gotOID)

	gotDesc, err := cat.TupleDescForRelation("widgets")
	require.NoError(t, err)
	require.Len(t, gotDesc.Attrs, 2)
	assert.Equal(t, "id", gotDesc.Attrs[0].AttName)
	assert.Equal(t, "name", gotDesc.Attrs[1].AttName)

	tuple, err := heap.FromDatums([]datum.Datum{datum.EncodeInt(1), datum.EncodeVarchar("gizmo")}, gotDesc)
	require.NoError(t, err)
	require.NoError(t, heap.Insert(pool, rel, tuple))

	scanned, err := heap.Scan(pool, rel)
	require.NoError(t, err)
	require.Len(t, scanned, 1)
}
