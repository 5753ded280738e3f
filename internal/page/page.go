// Package page implements the slotted page format: a 24-byte header
// followed by a line-pointer array growing forward and a tuple heap
// growing backward from the end of the page.
package page

import (
	"encoding/binary"

	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/storage"
)

// Size is the fixed page size in bytes.
const Size = storage.PageSize

// HeaderSize is the length of the page header.
const HeaderSize = 24

// itemIDSize is the length of one line pointer.
const itemIDSize = 4

// Header is the first 24 bytes of every page.
type Header struct {
	StartFreeSpace uint16 // end of the line-pointer array
	EndFreeSpace   uint16 // start of the tuple heap
}

// DefaultHeader returns the header of a brand-new, empty page.
func DefaultHeader() Header {
	return Header{StartFreeSpace: HeaderSize, EndFreeSpace: Size}
}

// ItemID is a 4-byte line pointer: byte offset and length of a tuple.
type ItemID struct {
	Offset uint16
	Length uint16
}

// ReadHeader decodes the header from the first 24 bytes of page.
func ReadHeader(page []byte) Header {
	return Header{
		StartFreeSpace: binary.LittleEndian.Uint16(page[0:2]),
		EndFreeSpace:   binary.LittleEndian.Uint16(page[2:4]),
	}
}

// WriteHeader encodes h into the first 24 bytes of page, zeroing the
// reserved padding.
func WriteHeader(page []byte, h Header) {
	binary.LittleEndian.PutUint16(page[0:2], h.StartFreeSpace)
	binary.LittleEndian.PutUint16(page[2:4], h.EndFreeSpace)
	for i := 4; i < HeaderSize; i++ {
		page[i] = 0
	}
}

// FreeSpace returns the number of free bytes between the line-pointer
// array and the tuple heap.
func (h Header) FreeSpace() int {
	return int(h.EndFreeSpace) - int(h.StartFreeSpace)
}

// Init writes a fresh, empty header onto page.
func Init(page []byte) {
	WriteHeader(page, DefaultHeader())
}

// AddItem writes item at the end of the tuple heap and appends a new
// line pointer for it, returning the new item's 1-based slot index.
// Fails with errs.PageFull if there is no room for both.
func AddItem(pg []byte, item []byte) (int, error) {
	h := ReadHeader(pg)

	itemOffset := int(h.EndFreeSpace) - len(item)
	itemIDOffset := int(h.StartFreeSpace)

	if itemIDOffset+itemIDSize > itemOffset {
		return 0, errs.Trace(errs.PageFull)
	}

	writeItemID(pg, itemIDOffset, ItemID{Offset: uint16(itemOffset), Length: uint16(len(item))})
	copy(pg[itemOffset:itemOffset+len(item)], item)

	h.StartFreeSpace += itemIDSize
	h.EndFreeSpace = uint16(itemOffset)
	WriteHeader(pg, h)

	return (itemIDOffset-HeaderSize)/itemIDSize + 1, nil
}

func writeItemID(pg []byte, offset int, id ItemID) {
	binary.LittleEndian.PutUint16(pg[offset:offset+2], id.Offset)
	binary.LittleEndian.PutUint16(pg[offset+2:offset+4], id.Length)
}

func readItemID(pg []byte, offset int) ItemID {
	return ItemID{
		Offset: binary.LittleEndian.Uint16(pg[offset : offset+2]),
		Length: binary.LittleEndian.Uint16(pg[offset+2 : offset+4]),
	}
}

// ItemIDs returns every line pointer on the page, in slot order.
func ItemIDs(pg []byte) []ItemID {
	h := ReadHeader(pg)
	count := (int(h.StartFreeSpace) - HeaderSize) / itemIDSize
	ids := make([]ItemID, count)
	for i := 0; i < count; i++ {
		ids[i] = readItemID(pg, HeaderSize+i*itemIDSize)
	}
	return ids
}

// ReadItem returns a copy of the tuple bytes pointed to by id.
func ReadItem(pg []byte, id ItemID) []byte {
	out := make([]byte, id.Length)
	copy(out, pg[id.Offset:int(id.Offset)+int(id.Length)])
	return out
}
