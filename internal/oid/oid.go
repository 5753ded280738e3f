// Package oid defines the object identifier type shared by every
// relation, database, and tablespace in the storage core.
package oid

import "sync/atomic"

// OID is an object identifier, unique within a database for local
// objects and within the cluster for global objects.
type OID uint64

// Invalid is the sentinel OID meaning "no object".
const Invalid OID = 0

// Well-known, reserved OIDs.
const (
	PgTablespace OID = 1213
	PgAttribute  OID = 1249
	PgClass      OID = 1259
	PgDatabase   OID = 1262

	DefaultTablespace OID = 1663
	GlobalTablespace  OID = 1664

	TinydbDatabase OID = 5
)

// Built-in type OIDs.
const (
	TypeBool    OID = 16
	TypeInt     OID = 23
	TypeNumeric OID = 1700
	TypeVarchar OID = 1043
)

// firstUserOID is the first value handed out by the counter; values
// below it are reserved for well-known system objects.
const firstUserOID = 10000

var counter uint64 = firstUserOID

// Next draws the next OID from the process-wide monotonic counter.
// Wraparound at 2^64 is a known, ignored limitation.
func Next() OID {
	return OID(atomic.AddUint64(&counter, 1) - 1)
}

// Reset rewinds the counter; used by tests that need deterministic OIDs.
func Reset() {
	atomic.StoreUint64(&counter, firstUserOID)
}
