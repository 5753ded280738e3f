// Package catalog implements the four self-describing system tables:
// pg_attribute, pg_class, pg_database, pg_tablespace. Their own
// schemas are hard-coded here (compile-time known) so lookups for the
// four catalog names short-circuit without a scan.
package catalog

import (
	"github.com/tinydb/engine/internal/heap"
	"github.com/tinydb/engine/internal/heap/datum"
	"github.com/tinydb/engine/internal/oid"
)

func attr(relOID oid.OID, name string, num int, length int, typID oid.OID) heap.Attribute {
	return heap.Attribute{AttRelID: relOID, AttName: name, AttNum: num, AttLen: length, AttTypID: typID}
}

// PgAttributeDesc is pg_attribute's own tuple descriptor.
func PgAttributeDesc() heap.TupleDesc {
	r := oid.PgAttribute
	return heap.TupleDesc{Attrs: []heap.Attribute{
		attr(r, "attrelid", 1, 8, oid.TypeInt),
		attr(r, "attname", 2, -1, oid.TypeVarchar),
		attr(r, "attnum", 3, 4, oid.TypeInt),
		attr(r, "attlen", 4, 4, oid.TypeInt),
		attr(r, "atttypid", 5, 8, oid.TypeInt),
	}}
}

// PgClassDesc is pg_class's own tuple descriptor.
func PgClassDesc() heap.TupleDesc {
	r := oid.PgClass
	return heap.TupleDesc{Attrs: []heap.Attribute{
		attr(r, "oid", 1, 8, oid.TypeInt),
		attr(r, "relname", 2, -1, oid.TypeVarchar),
		attr(r, "reltablespace", 3, 8, oid.TypeInt),
		attr(r, "relisshared", 4, 1, oid.TypeBool),
	}}
}

// PgDatabaseDesc is pg_database's own tuple descriptor.
func PgDatabaseDesc() heap.TupleDesc {
	r := oid.PgDatabase
	return heap.TupleDesc{Attrs: []heap.Attribute{
		attr(r, "oid", 1, 8, oid.TypeInt),
		attr(r, "datname", 2, -1, oid.TypeVarchar),
		attr(r, "dattablespace", 3, 8, oid.TypeInt),
	}}
}

// PgTablespaceDesc is pg_tablespace's own tuple descriptor.
func PgTablespaceDesc() heap.TupleDesc {
	r := oid.PgTablespace
	return heap.TupleDesc{Attrs: []heap.Attribute{
		attr(r, "oid", 1, 8, oid.TypeInt),
		attr(r, "spcname", 2, -1, oid.TypeVarchar),
	}}
}

// wellKnownDesc short-circuits lookups for the four catalog names to
// their hard-coded descriptors.
func wellKnownDesc(name string) (heap.TupleDesc, bool) {
	switch name {
	case "pg_attribute":
		return PgAttributeDesc(), true
	case "pg_class":
		return PgClassDesc(), true
	case "pg_database":
		return PgDatabaseDesc(), true
	case "pg_tablespace":
		return PgTablespaceDesc(), true
	default:
		return heap.TupleDesc{}, false
	}
}

// PgAttributeRow is one decoded row of pg_attribute.
type PgAttributeRow struct {
	AttRelID oid.OID
	AttName  string
	AttNum   int
	AttLen   int
	AttTypID oid.OID
}

func (r PgAttributeRow) datums() []datum.Datum {
	return []datum.Datum{
		datum.EncodeOID(uint64(r.AttRelID)),
		datum.EncodeVarchar(r.AttName),
		datum.EncodeInt(int32(r.AttNum)),
		datum.EncodeInt(int32(r.AttLen)),
		datum.EncodeOID(uint64(r.AttTypID)),
	}
}

func decodePgAttributeRow(t heap.Tuple, desc heap.TupleDesc) (PgAttributeRow, error) {
	var row PgAttributeRow
	b, err := heap.GetAttr(t, 1, desc)
	if err != nil {
		return row, err
	}
	v, err := datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.AttRelID = oid.OID(v)

	b, err = heap.GetAttr(t, 2, desc)
	if err != nil {
		return row, err
	}
	row.AttName = datum.DecodeVarchar(b)

	b, err = heap.GetAttr(t, 3, desc)
	if err != nil {
		return row, err
	}
	n, err := datum.DecodeInt(b)
	if err != nil {
		return row, err
	}
	row.AttNum = int(n)

	b, err = heap.GetAttr(t, 4, desc)
	if err != nil {
		return row, err
	}
	n, err = datum.DecodeInt(b)
	if err != nil {
		return row, err
	}
	row.AttLen = int(n)

	b, err = heap.GetAttr(t, 5, desc)
	if err != nil {
		return row, err
	}
	v, err = datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.AttTypID = oid.OID(v)

	return row, nil
}

// PgClassRow is one decoded row of pg_class.
type PgClassRow struct {
	OID           oid.OID
	RelName       string
	RelTablespace oid.OID
	RelIsShared   bool
}

func (r PgClassRow) datums() []datum.Datum {
	return []datum.Datum{
		datum.EncodeOID(uint64(r.OID)),
		datum.EncodeVarchar(r.RelName),
		datum.EncodeOID(uint64(r.RelTablespace)),
		datum.EncodeBool(r.RelIsShared),
	}
}

func decodePgClassRow(t heap.Tuple, desc heap.TupleDesc) (PgClassRow, error) {
	var row PgClassRow

	b, err := heap.GetAttr(t, 1, desc)
	if err != nil {
		return row, err
	}
	v, err := datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.OID = oid.OID(v)

	b, err = heap.GetAttr(t, 2, desc)
	if err != nil {
		return row, err
	}
	row.RelName = datum.DecodeVarchar(b)

	b, err = heap.GetAttr(t, 3, desc)
	if err != nil {
		return row, err
	}
	v, err = datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.RelTablespace = oid.OID(v)

	b, err = heap.GetAttr(t, 4, desc)
	if err != nil {
		return row, err
	}
	shared, err := datum.DecodeBool(b)
	if err != nil {
		return row, err
	}
	row.RelIsShared = shared

	return row, nil
}

// PgDatabaseRow is one decoded row of pg_database.
type PgDatabaseRow struct {
	OID           oid.OID
	DatName       string
	DatTablespace oid.OID
}

func (r PgDatabaseRow) datums() []datum.Datum {
	return []datum.Datum{
		datum.EncodeOID(uint64(r.OID)),
		datum.EncodeVarchar(r.DatName),
		datum.EncodeOID(uint64(r.DatTablespace)),
	}
}

func decodePgDatabaseRow(t heap.Tuple, desc heap.TupleDesc) (PgDatabaseRow, error) {
	var row PgDatabaseRow

	b, err := heap.GetAttr(t, 1, desc)
	if err != nil {
		return row, err
	}
	v, err := datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.OID = oid.OID(v)

	b, err = heap.GetAttr(t, 2, desc)
	if err != nil {
		return row, err
	}
	row.DatName = datum.DecodeVarchar(b)

	b, err = heap.GetAttr(t, 3, desc)
	if err != nil {
		return row, err
	}
	v, err = datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.DatTablespace = oid.OID(v)

	return row, nil
}

// PgTablespaceRow is one decoded row of pg_tablespace.
type PgTablespaceRow struct {
	OID     oid.OID
	SpcName string
}

func (r PgTablespaceRow) datums() []datum.Datum {
	return []datum.Datum{
		datum.EncodeOID(uint64(r.OID)),
		datum.EncodeVarchar(r.SpcName),
	}
}

func decodePgTablespaceRow(t heap.Tuple, desc heap.TupleDesc) (PgTablespaceRow, error) {
	var row PgTablespaceRow

	b, err := heap.GetAttr(t, 1, desc)
	if err != nil {
		return row, err
	}
	v, err := datum.DecodeOID(b)
	if err != nil {
		return row, err
	}
	row.OID = oid.OID(v)

	b, err = heap.GetAttr(t, 2, desc)
	if err != nil {
		return row, err
	}
	row.SpcName = datum.DecodeVarchar(b)

	return row, nil
}
