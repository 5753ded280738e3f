// Package buffer implements a bounded, pinning, LRU-based buffer
// pool: a fixed set of page frames, a page table keyed by Tag,
// pin/unpin refcounting, dirty write-back, and victim selection via
// an LRU replacer.
package buffer

import (
	"sync"

	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/dbctx/log"
	"github.com/tinydb/engine/internal/oid"
	"github.com/tinydb/engine/internal/page"
)

// Relation is the minimal surface the buffer pool needs from a
// relation: a storage handle for I/O.
type Relation interface {
	Read(pageNo uint32, out []byte) error
	Write(pageNo uint32, buf []byte) error
	Extend() (uint32, error)
}

type frame struct {
	data     [page.Size]byte
	tag      Tag
	refcount int
	dirty    bool
	valid    bool
	rel      Relation
}

// tableEntry resolves hash collisions by keeping every frame id that
// hashed to the same bucket; almost always a single element.
type tableEntry struct {
	tag     Tag
	frameID int
}

// Pool is a bounded cache of N page frames.
type Pool struct {
	mu sync.Mutex

	frames []frame
	lru    *lruReplacer
	free   []int // never-used frame ids

	pageTable map[uint64][]tableEntry
}

// New creates a buffer pool with capacity frames.
func New(capacity int) *Pool {
	free := make([]int, capacity)
	for i := range free {
		free[i] = i
	}
	return &Pool{
		frames:    make([]frame, capacity),
		lru:       newLRUReplacer(capacity),
		free:      free,
		pageTable: make(map[uint64][]tableEntry),
	}
}

func (p *Pool) lookup(tag Tag) (int, bool) {
	for _, e := range p.pageTable[tag.key()] {
		if e.tag == tag {
			return e.frameID, true
		}
	}
	return 0, false
}

func (p *Pool) insertTableEntry(tag Tag, frameID int) {
	k := tag.key()
	p.pageTable[k] = append(p.pageTable[k], tableEntry{tag: tag, frameID: frameID})
}

func (p *Pool) removeTableEntry(tag Tag) {
	k := tag.key()
	entries := p.pageTable[k]
	for i, e := range entries {
		if e.tag == tag {
			p.pageTable[k] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(p.pageTable[k]) == 0 {
		delete(p.pageTable, k)
	}
}

// FetchBuffer returns a pinned buffer id holding rel's page pageNo,
// loading it from storage on a cache miss.
func (p *Pool) FetchBuffer(rel Relation, tablespace, database, relOID oid.OID, pageNo uint32) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tag := Tag{Tablespace: tablespace, Database: database, Relation: relOID, PageNo: pageNo}

	if id, ok := p.lookup(tag); ok {
		p.frames[id].refcount++
		p.lru.Pin(id)
		return id, nil
	}

	id, err := p.obtainFrame()
	if err != nil {
		return 0, err
	}

	f := &p.frames[id]
	f.tag = tag
	f.dirty = false
	f.rel = rel
	for i := range f.data {
		f.data[i] = 0
	}
	if err := rel.Read(pageNo, f.data[:]); err != nil {
		p.free = append(p.free, id)
		return 0, err
	}
	f.valid = true
	f.refcount = 1

	p.insertTableEntry(tag, id)
	return id, nil
}

// AllocBuffer extends rel by one page via its storage manager and
// loads it, pinned, into a fresh frame.
func (p *Pool) AllocBuffer(rel Relation, tablespace, database, relOID oid.OID) (int, uint32, error) {
	newPageNo, err := rel.Extend()
	if err != nil {
		return 0, 0, err
	}
	id, err := p.FetchBuffer(rel, tablespace, database, relOID, newPageNo)
	if err != nil {
		return 0, 0, err
	}
	return id, newPageNo, nil
}

// obtainFrame returns a usable frame id: a never-used frame if any
// remain, otherwise an LRU victim. Caller holds p.mu.
func (p *Pool) obtainFrame() (int, error) {
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		return id, nil
	}
	return p.victim()
}

// victim evicts the least-recently-unpinned frame, flushing it first
// if dirty. Caller holds p.mu.
func (p *Pool) victim() (int, error) {
	id, ok := p.lru.Victim()
	if !ok {
		return 0, errs.Trace(errs.NoFreeSlots)
	}

	f := &p.frames[id]
	if f.dirty {
		if err := p.flushLocked(id); err != nil {
			log.Warnf("buffer pool: failed to flush dirty victim frame %d: %v", id, err)
		}
	}
	p.removeTableEntry(f.tag)
	f.valid = false
	return id, nil
}

// Page returns the live page image for a pinned buffer id. The slice
// is only valid until the buffer is unpinned.
func (p *Pool) Page(bufferID int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames[bufferID].data[:]
}

// UnpinBuffer decrements the buffer's refcount and ORs in isDirty. A
// buffer whose refcount reaches zero becomes eligible for eviction.
func (p *Pool) UnpinBuffer(bufferID int, isDirty bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := &p.frames[bufferID]
	f.dirty = f.dirty || isDirty
	if f.refcount > 0 {
		f.refcount--
	}
	if f.refcount == 0 {
		p.lru.Unpin(bufferID)
	}
}

// FlushBuffer writes a frame's current image to disk and clears its
// dirty bit.
func (p *Pool) FlushBuffer(bufferID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked(bufferID)
}

func (p *Pool) flushLocked(bufferID int) error {
	f := &p.frames[bufferID]
	if !f.valid {
		return nil
	}
	if err := f.rel.Write(f.tag.PageNo, f.data[:]); err != nil {
		return err
	}
	f.dirty = false
	return nil
}

// FlushAllBuffers flushes every live page-table entry; invoked on
// clean shutdown.
func (p *Pool) FlushAllBuffers() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entries := range p.pageTable {
		for _, e := range entries {
			if err := p.flushLocked(e.frameID); err != nil {
				return err
			}
		}
	}
	return nil
}
