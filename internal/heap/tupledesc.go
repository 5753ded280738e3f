package heap

import "github.com/tinydb/engine/internal/oid"

// Attribute describes one column of a relation's on-disk tuple layout.
type Attribute struct {
	AttRelID oid.OID
	AttName  string
	AttNum   int // 1-based
	AttLen   int // positive = fixed width in bytes, -1 = variable-width
	AttTypID oid.OID
}

// TupleDesc is the ordered list of attribute descriptors defining a
// relation's row layout.
type TupleDesc struct {
	Attrs []Attribute
}
