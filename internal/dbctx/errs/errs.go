// Package errs defines the sentinel error kinds the storage core
// surfaces to its callers, wrapped with github.com/pingcap/errors at
// each boundary that adds context.
package errs

import "github.com/pingcap/errors"

// Sentinel error kinds. Compare with errors.Cause(err) ==
// errs.InvalidPageNumber or errors.Is.
var (
	InvalidPageNumber    = errors.New("invalid page number")
	NoFreeSlots          = errors.New("no free slots in buffer pool")
	PageFull             = errors.New("page full")
	RelationNotFound     = errors.New("relation not found")
	InvalidTuple         = errors.New("invalid tuple")
	UnsupportedValue     = errors.New("unsupported value")
	UnsupportedOperation = errors.New("unsupported operation")
	CorruptedFile        = errors.New("corrupted file")
	IO                   = errors.New("io error")
	InvalidLocator       = errors.New("invalid relation locator")
)

// Trace annotates err with a stack trace at the call site, preserving
// its cause for errors.Cause / errors.Is comparisons. No-op on nil.
func Trace(err error) error {
	return errors.Trace(err)
}

// Annotatef wraps err with a formatted message while preserving its
// cause. No-op on nil.
func Annotatef(err error, format string, args ...interface{}) error {
	return errors.Annotatef(err, format, args...)
}

// Is reports whether err's cause chain contains target.
func Is(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		cause := errors.Cause(err)
		if cause == err {
			return false
		}
		err = cause
	}
	return false
}
