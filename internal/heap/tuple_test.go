package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinydb/engine/internal/heap/datum"
	"github.com/tinydb/engine/internal/oid"
)

func testDesc() TupleDesc {
	return TupleDesc{Attrs: []Attribute{
		{AttName: "id", AttNum: 1, AttLen: 4, AttTypID: oid.TypeInt},
		{AttName: "name", AttNum: 2, AttLen: -1, AttTypID: oid.TypeVarchar},
		{AttName: "active", AttNum: 3, AttLen: 1, AttTypID: oid.TypeBool},
	}}
}

func TestFromDatumsAndGetAttrRoundTrip(t *testing.T) {
	desc := testDesc()
	values := []datum.Datum{
		datum.EncodeInt(42),
		datum.EncodeVarchar("widget"),
		datum.EncodeBool(true),
	}

	tuple, err := FromDatums(values, desc)
	require.NoError(t, err)
	assert.False(t, tuple.Header.HasNull())
	assert.True(t, tuple.Header.HasVarWidth())

	idBytes, err := GetAttr(tuple, 1, desc)
	require.NoError(t, err)
	id, err := datum.DecodeInt(idBytes)
	require.NoError(t, err)
	assert.Equal(t, int32(42), id)

	nameBytes, err := GetAttr(tuple, 2, desc)
	require.NoError(t, err)
	assert.Equal(t, "widget", datum.DecodeVarchar(nameBytes))

	activeBytes, err := GetAttr(tuple, 3, desc)
	require.NoError(t, err)
	active, err := datum.DecodeBool(activeBytes)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestFromDatumsWithNullsSetsBitmapAndSkipsData(t *testing.T) {
	desc := testDesc()
	values := []datum.Datum{
		datum.EncodeInt(7),
		nil,
		datum.EncodeBool(false),
	}

	tuple, err := FromDatums(values, desc)
	require.NoError(t, err)
	assert.True(t, tuple.Header.HasNull())

	nameBytes, err := GetAttr(tuple, 2, desc)
	require.NoError(t, err)
	assert.Nil(t, nameBytes)

	idBytes, err := GetAttr(tuple, 1, desc)
	require.NoError(t, err)
	id, err := datum.DecodeInt(idBytes)
	require.NoError(t, err)
	assert.Equal(t, int32(7), id)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	desc := testDesc()
	values := []datum.Datum{
		datum.EncodeInt(99),
		datum.EncodeVarchar("round trip"),
		datum.EncodeBool(true),
	}

	tuple, err := FromDatums(values, desc)
	require.NoError(t, err)

	raw := Encode(tuple)
	decoded, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, tuple.Header, decoded.Header)
	assert.Equal(t, tuple.Nulls, decoded.Nulls)
	assert.Equal(t, tuple.Data, decoded.Data)
}

func TestDecodeRejectsTruncatedTuple(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestFromDatumsRejectsWrongValueCount(t *testing.T) {
	desc := testDesc()
	_, err := FromDatums([]datum.Datum{datum.EncodeInt(1)}, desc)
	assert.Error(t, err)
}

func TestGetAttrOutOfRangeReturnsNil(t *testing.T) {
	desc := testDesc()
	tuple, err := FromDatums([]datum.Datum{datum.EncodeInt(1), datum.EncodeVarchar("x"), datum.EncodeBool(false)}, desc)
	require.NoError(t, err)

	v, err := GetAttr(tuple, 99, desc)
	require.NoError(t, err)
	assert.Nil(t, v)
}
