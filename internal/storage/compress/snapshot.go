// Package compress implements ExportSnapshot, a cold-backup utility
// that walks every relation the catalog knows about and writes a
// snappy-compressed, length-prefixed stream. It is not a WAL: this
// adds neither durability nor replay, only an off-line copy.
package compress

import (
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/tinydb/engine/internal/catalog"
	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/dbctx/log"
	"github.com/tinydb/engine/internal/oid"
	"github.com/tinydb/engine/internal/page"
	"github.com/tinydb/engine/internal/relation"
)

// frameMagic tags the stream so a restore tool can sanity-check its input.
const frameMagic = "TDBSNAP1"

// ExportSnapshot writes a snapshot of every relation registered in
// cat's pg_class to out. Stream layout: an 8-byte magic, then for
// each relation a 2-byte name length, the name, an 8-byte OID, a
// 4-byte page count, and that many (4-byte compressed length,
// compressed bytes) pairs.
func ExportSnapshot(dataDir string, cat *catalog.Catalog, out io.Writer) error {
	if _, err := io.WriteString(out, frameMagic); err != nil {
		return errs.Trace(err)
	}

	rows, err := cat.ScanPgClass()
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := exportRelation(dataDir, cat.Database(), row, out); err != nil {
			return errs.Annotatef(err, "exporting relation %q", row.RelName)
		}
	}
	return nil
}

func exportRelation(dataDir string, db oid.OID, row catalog.PgClassRow, out io.Writer) error {
	loc := relation.Locator{Tablespace: row.RelTablespace, OID: row.OID}
	if row.RelTablespace == oid.DefaultTablespace {
		loc.Database = db
	}

	rel, err := relation.Open(dataDir, row.RelName, loc)
	if err != nil {
		return err
	}
	defer rel.Storage.Close()

	total := rel.Storage.Size()
	log.Debugf("compress: exporting relation %q (oid %d), %d pages", row.RelName, row.OID, total)

	if err := writeString16(out, row.RelName); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, uint64(row.OID)); err != nil {
		return errs.Trace(err)
	}
	if err := binary.Write(out, binary.LittleEndian, total); err != nil {
		return errs.Trace(err)
	}

	raw := make([]byte, page.Size)
	for pageNo := uint32(1); pageNo <= total; pageNo++ {
		if err := rel.Storage.Read(pageNo, raw); err != nil {
			return err
		}
		compressed := snappy.Encode(nil, raw)
		if err := binary.Write(out, binary.LittleEndian, uint32(len(compressed))); err != nil {
			return errs.Trace(err)
		}
		if _, err := out.Write(compressed); err != nil {
			return errs.Trace(err)
		}
	}
	return nil
}

func writeString16(out io.Writer, s string) error {
	if err := binary.Write(out, binary.LittleEndian, uint16(len(s))); err != nil {
		return errs.Trace(err)
	}
	_, err := io.WriteString(out, s)
	return errs.Trace(err)
}
