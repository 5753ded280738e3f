// Package datum holds typed attribute values and their on-disk
// encoding, including the variable-length ("varlena") framing used
// for VARCHAR and other variable-width types.
package datum

import (
	"encoding/binary"

	"github.com/piex/transcode"
	"github.com/shopspring/decimal"
	"github.com/tinydb/engine/internal/dbctx/errs"
)

// Datum is an already-encoded attribute value. Callers representing a
// NULL attribute use a nil Datum rather than a zero-length one.
type Datum = []byte

// EncodeInt encodes a 4-byte fixed-width INT attribute.
func EncodeInt(v int32) Datum {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

// DecodeInt decodes a 4-byte fixed-width INT attribute.
func DecodeInt(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, errs.Annotatef(errs.InvalidTuple, "int attribute must be 4 bytes, got %d", len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// EncodeOID encodes an 8-byte fixed-width OID attribute.
func EncodeOID(v uint64) Datum {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// DecodeOID decodes an 8-byte fixed-width OID attribute.
func DecodeOID(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errs.Annotatef(errs.InvalidTuple, "oid attribute must be 8 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

// EncodeBool encodes a 1-byte fixed-width BOOL attribute.
func EncodeBool(v bool) Datum {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool decodes a 1-byte fixed-width BOOL attribute.
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, errs.Annotatef(errs.InvalidTuple, "bool attribute must be 1 byte, got %d", len(b))
	}
	return b[0] != 0, nil
}

// EncodeVarchar encodes a variable-width VARCHAR attribute as a
// varlena: a 4-byte little-endian length prefix (matching the page
// header's byte order) followed by the raw UTF-8 string bytes.
func EncodeVarchar(s string) Datum {
	return encodeVarlena([]byte(s))
}

// DecodeVarchar decodes a varlena-framed VARCHAR attribute, assuming
// its bytes are already UTF-8.
func DecodeVarchar(inner []byte) string {
	return string(inner)
}

// DecodeVarcharCharset decodes a varlena-framed VARCHAR attribute
// whose bytes were stored in the given non-UTF-8 charset (e.g. "GBK"),
// transcoding them to a Go string.
func DecodeVarcharCharset(inner []byte, charset string) string {
	return transcode.FromByteArray(inner).Decode(charset).ToString()
}

// EncodeVarcharCharset transcodes s from UTF-8 into the given charset
// and encodes the result as a varlena, the inverse of
// DecodeVarcharCharset.
func EncodeVarcharCharset(s string, charset string) Datum {
	encoded := transcode.FromString(s).Encode(charset).ToByteArray()
	return encodeVarlena(encoded)
}

// EncodeNumeric encodes a NUMERIC attribute as a varlena wrapping the
// decimal's string form, preserving exact fixed-point precision.
func EncodeNumeric(v decimal.Decimal) Datum {
	return encodeVarlena([]byte(v.String()))
}

// DecodeNumeric decodes a NUMERIC attribute from its varlena inner bytes.
func DecodeNumeric(inner []byte) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(inner))
	if err != nil {
		return decimal.Decimal{}, errs.Annotatef(errs.InvalidTuple, "decoding numeric: %v", err)
	}
	return d, nil
}

func encodeVarlena(data []byte) []byte {
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(data)))
	copy(buf[4:], data)
	return buf
}

// VarlenaSize returns the total on-disk size (length prefix + data)
// of the varlena value starting at data[0:].
func VarlenaSize(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, errs.Annotatef(errs.InvalidTuple, "truncated varlena header")
	}
	length := binary.LittleEndian.Uint32(data[0:4])
	total := 4 + int(length)
	if total > len(data) {
		return 0, errs.Annotatef(errs.InvalidTuple, "varlena declares %d bytes but only %d available", total, len(data))
	}
	return total, nil
}

// VarlenaInner returns the raw data portion of a varlena value
// (without its length prefix).
func VarlenaInner(data []byte) ([]byte, error) {
	total, err := VarlenaSize(data)
	if err != nil {
		return nil, err
	}
	return data[4:total], nil
}
