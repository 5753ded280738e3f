// Package dump lz4-frames a catalog snapshot for cmd/tinydb-dump, the
// pg_dump-style companion tool that exercises the catalog and heap
// scan interfaces end-to-end without adding SQL.
package dump

import (
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/tinydb/engine/internal/catalog"
	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/storage/compress"
)

// Write produces an lz4-framed snapshot of every relation cat's
// pg_class describes, written to out.
func Write(dataDir string, cat *catalog.Catalog, out io.Writer) error {
	lw := lz4.NewWriter(out)
	if err := compress.ExportSnapshot(dataDir, cat, lw); err != nil {
		return errs.Trace(err)
	}
	return errs.Trace(lw.Close())
}
