package buffer

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	"github.com/tinydb/engine/internal/oid"
)

// Tag identifies one cached page: which relation and which page
// number within it.
type Tag struct {
	Tablespace oid.OID
	Database   oid.OID
	Relation   oid.OID
	PageNo     uint32
}

// key hashes a Tag down to a uint64 page-table key with xxhash, since
// a Tag carries three OID fields plus a page number and doesn't fit a
// single bit-packed integer.
func (t Tag) key() uint64 {
	var buf [28]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(t.Tablespace))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(t.Database))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(t.Relation))
	binary.LittleEndian.PutUint32(buf[24:28], t.PageNo)
	return xxhash.Checksum64(buf[:])
}
