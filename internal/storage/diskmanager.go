// Package storage is the per-relation pager: a disk manager that owns
// one open file handle per relation, plus a thin storage-manager
// wrapper that is the single entry point access-method code uses for
// physical I/O.
//
// Pages are 1-based; page 0 is a sentinel for "invalid page number".
// A relation file grows one page at a time via AllocatePage, which
// returns the new page's number.
package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/tinydb/engine/internal/dbctx/errs"
)

// PageSize is the fixed size of every page, in bytes.
const PageSize = 8192

// DiskManager owns one open file handle for a single relation and
// performs blocking page I/O against it.
type DiskManager struct {
	mu         sync.RWMutex
	file       *os.File
	path       string
	totalPages uint32
}

// OpenDiskManager opens (creating if missing) the relation file at
// path and records its total page count.
func OpenDiskManager(path string) (*DiskManager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errs.Trace(err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errs.Annotatef(err, "opening relation file %s", path)
	}

	dm := &DiskManager{file: f, path: path}
	size, err := dm.fileSize()
	if err != nil {
		f.Close()
		return nil, err
	}
	if size%PageSize != 0 {
		f.Close()
		return nil, errs.Annotatef(errs.CorruptedFile, "relation file %s has length %d, not a multiple of page size", path, size)
	}
	dm.totalPages = uint32(size / PageSize)
	return dm, nil
}

func (dm *DiskManager) fileSize() (int64, error) {
	info, err := dm.file.Stat()
	if err != nil {
		return 0, errs.Trace(err)
	}
	return info.Size(), nil
}

// Size returns the relation's total page count.
func (dm *DiskManager) Size() uint32 {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.totalPages
}

// ReadPage reads page n (1-based) into out, which must be exactly
// PageSize bytes long.
func (dm *DiskManager) ReadPage(n uint32, out []byte) error {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	if n == 0 || n > dm.totalPages {
		return errs.Annotatef(errs.InvalidPageNumber, "page %d (total %d)", n, dm.totalPages)
	}
	if len(out) != PageSize {
		return errs.Annotatef(errs.IO, "read buffer must be %d bytes, got %d", PageSize, len(out))
	}

	offset := int64(n-1) * PageSize
	read, err := dm.file.ReadAt(out, offset)
	if err != nil {
		return errs.Annotatef(errs.IO, "reading page %d: %v", n, err)
	}
	if read != PageSize {
		return errs.Annotatef(errs.IO, "short read of page %d: got %d bytes", n, read)
	}
	return nil
}

// WritePage writes buf (exactly PageSize bytes) to page n and flushes
// the OS buffer for the file.
func (dm *DiskManager) WritePage(n uint32, buf []byte) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if n == 0 || n > dm.totalPages {
		return errs.Annotatef(errs.InvalidPageNumber, "page %d (total %d)", n, dm.totalPages)
	}
	if len(buf) != PageSize {
		return errs.Annotatef(errs.IO, "write buffer must be %d bytes, got %d", PageSize, len(buf))
	}

	offset := int64(n-1) * PageSize
	written, err := dm.file.WriteAt(buf, offset)
	if err != nil {
		return errs.Annotatef(errs.IO, "writing page %d: %v", n, err)
	}
	if written != PageSize {
		return errs.Annotatef(errs.IO, "short write of page %d: wrote %d bytes", n, written)
	}
	return errs.Trace(dm.file.Sync())
}

// AllocatePage atomically grows the file by one zero-filled page and
// returns its page number.
func (dm *DiskManager) AllocatePage() (uint32, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	newPageNo := dm.totalPages + 1
	offset := int64(dm.totalPages) * PageSize

	zero := make([]byte, PageSize)
	written, err := dm.file.WriteAt(zero, offset)
	if err != nil {
		return 0, errs.Annotatef(errs.IO, "allocating page %d: %v", newPageNo, err)
	}
	if written != PageSize {
		return 0, errs.Annotatef(errs.IO, "short write while allocating page %d", newPageNo)
	}
	if err := dm.file.Sync(); err != nil {
		return 0, errs.Trace(err)
	}

	dm.totalPages = newPageNo
	return newPageNo, nil
}

// Close closes the underlying file handle.
func (dm *DiskManager) Close() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return dm.file.Close()
}
