package relation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/oid"
)

func TestLocatorPathForDefaultTablespace(t *testing.T) {
	loc := Locator{Tablespace: oid.DefaultTablespace, Database: 5, OID: 10042}

	path, err := loc.Path("/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "base", "5", "10042"), path)
}

func TestLocatorPathForGlobalTablespace(t *testing.T) {
	loc := Locator{Tablespace: oid.GlobalTablespace, OID: oid.PgDatabase}

	path, err := loc.Path("/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "global", "1262"), path)
}

func TestLocatorPathRejectsInvalidOID(t *testing.T) {
	loc := Locator{Tablespace: oid.DefaultTablespace, Database: 5}

	_, err := loc.Path("/data")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidLocator))
}

func TestLocatorPathRejectsDefaultTablespaceWithoutDatabase(t *testing.T) {
	loc := Locator{Tablespace: oid.DefaultTablespace, OID: 10042}

	_, err := loc.Path("/data")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidLocator))
}

func TestLocatorPathRejectsUnknownTablespace(t *testing.T) {
	loc := Locator{Tablespace: 999, OID: 10042}

	_, err := loc.Path("/data")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidLocator))
}
