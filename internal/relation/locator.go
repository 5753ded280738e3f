// Package relation maps relation identifiers to filesystem paths and
// holds the Relation handle shared by callers doing physical I/O.
package relation

import (
	"path/filepath"
	"strconv"

	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/oid"
)

// Locator fully identifies a relation's file.
type Locator struct {
	Tablespace oid.OID
	Database   oid.OID
	OID        oid.OID
}

// Path returns the relation's file path relative to dataDir.
func (l Locator) Path(dataDir string) (string, error) {
	if l.OID == oid.Invalid {
		return "", errs.Trace(errs.InvalidLocator)
	}

	switch l.Tablespace {
	case oid.DefaultTablespace:
		if l.Database == oid.Invalid {
			return "", errs.Trace(errs.InvalidLocator)
		}
		return filepath.Join(dataDir, "base", oidString(l.Database), oidString(l.OID)), nil
	case oid.GlobalTablespace:
		return filepath.Join(dataDir, "global", oidString(l.OID)), nil
	default:
		return "", errs.Trace(errs.InvalidLocator)
	}
}

func oidString(o oid.OID) string {
	return strconv.FormatUint(uint64(o), 10)
}
