// Package heap implements the heap tuple format (header, optional
// null bitmap, attribute payload) and the heap access method built on
// top of it, using an explicit little-endian byte layout.
package heap

import (
	"encoding/binary"

	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/heap/datum"
)

const (
	flagHasNull     uint16 = 0x0001
	flagHasVarWidth uint16 = 0x0002

	fixedHeaderSize = 6
)

// Header is the fixed 6-byte heap tuple header.
type Header struct {
	Flags      uint16
	NAttrs     uint16
	DataOffset uint16
}

// HasNull reports whether the tuple carries a null bitmap.
func (h Header) HasNull() bool { return h.Flags&flagHasNull != 0 }

// HasVarWidth reports whether any attribute is variable-width.
// Per Open Question 3, this flag is informational only: GetAttr never
// branches on it, since its intended fast-path use was never clarified.
func (h Header) HasVarWidth() bool { return h.Flags&flagHasVarWidth != 0 }

// Tuple is a decoded heap tuple: header, optional null bitmap, and
// the raw concatenated non-null attribute bytes.
type Tuple struct {
	Header Header
	Nulls  []bool // len == NAttrs-in-descriptor count when HasNull; empty otherwise
	Data   []byte
}

// Encode serializes t to its on-disk byte representation.
func Encode(t Tuple) []byte {
	out := make([]byte, fixedHeaderSize)
	binary.LittleEndian.PutUint16(out[0:2], t.Header.Flags)
	binary.LittleEndian.PutUint16(out[2:4], t.Header.NAttrs)
	binary.LittleEndian.PutUint16(out[4:6], t.Header.DataOffset)

	if t.Header.HasNull() {
		out = append(out, encodeBitmap(t.Nulls)...)
	}
	out = append(out, t.Data...)
	return out
}

// Decode parses raw tuple bytes into a Tuple.
func Decode(raw []byte) (Tuple, error) {
	if len(raw) < fixedHeaderSize {
		return Tuple{}, errs.Annotatef(errs.InvalidTuple, "tuple shorter than fixed header: %d bytes", len(raw))
	}

	h := Header{
		Flags:      binary.LittleEndian.Uint16(raw[0:2]),
		NAttrs:     binary.LittleEndian.Uint16(raw[2:4]),
		DataOffset: binary.LittleEndian.Uint16(raw[4:6]),
	}

	if int(h.DataOffset) > len(raw) {
		return Tuple{}, errs.Annotatef(errs.InvalidTuple, "data offset %d beyond tuple length %d", h.DataOffset, len(raw))
	}

	var nulls []bool
	if h.HasNull() {
		bitmapBytes := raw[fixedHeaderSize:h.DataOffset]
		nulls = decodeBitmap(bitmapBytes)
	}

	return Tuple{Header: h, Nulls: nulls, Data: raw[h.DataOffset:]}, nil
}

// encodeBitmap serializes one byte per boolean, matching the original
// bincode bool-sequence framing closely enough to stay a fixed,
// length-known region: one byte per flag (0/1).
func encodeBitmap(nulls []bool) []byte {
	out := make([]byte, len(nulls))
	for i, n := range nulls {
		if n {
			out[i] = 1
		}
	}
	return out
}

func decodeBitmap(b []byte) []bool {
	out := make([]bool, len(b))
	for i, v := range b {
		out[i] = v != 0
	}
	return out
}

// FromDatums builds a Tuple from a row of per-attribute values (nil
// entries are NULL), in tuple-descriptor order.
func FromDatums(values []datum.Datum, desc TupleDesc) (Tuple, error) {
	if len(values) != len(desc.Attrs) {
		return Tuple{}, errs.Annotatef(errs.InvalidTuple, "got %d values for %d attributes", len(values), len(desc.Attrs))
	}

	t := Tuple{Header: Header{DataOffset: fixedHeaderSize}}

	for i, v := range values {
		attr := desc.Attrs[i]
		if v == nil {
			t.Header.Flags |= flagHasNull
			t.Nulls = append(t.Nulls, true)
			continue
		}

		if attr.AttLen < 0 {
			t.Header.Flags |= flagHasVarWidth
		}
		t.Nulls = append(t.Nulls, false)
		t.Header.NAttrs++
		t.Data = append(t.Data, v...)
	}

	if t.Header.HasNull() {
		t.Header.DataOffset += uint16(len(t.Nulls))
	} else {
		t.Nulls = nil
	}

	return t, nil
}

// attrIsNull reports whether the given 1-based attnum is null.
func (t Tuple) attrIsNull(attnum int) bool {
	return t.Header.HasNull() && attnum >= 1 && attnum <= len(t.Nulls) && t.Nulls[attnum-1]
}

// GetAttr extracts the raw bytes of the given 1-based attribute
// number, or nil if it is out of range or NULL.
func GetAttr(t Tuple, attnum int, desc TupleDesc) ([]byte, error) {
	if attnum < 1 || attnum > len(desc.Attrs) || t.attrIsNull(attnum) {
		return nil, nil
	}

	off := 0
	for _, attr := range desc.Attrs {
		if t.attrIsNull(attr.AttNum) {
			continue
		}

		if attr.AttLen > 0 {
			end := off + attr.AttLen
			if attr.AttNum == attnum {
				return t.Data[off:end], nil
			}
			off = end
			continue
		}

		size, err := datum.VarlenaSize(t.Data[off:])
		if err != nil {
			return nil, err
		}
		if attr.AttNum == attnum {
			return datum.VarlenaInner(t.Data[off:])
		}
		off += size
	}

	return nil, nil
}
