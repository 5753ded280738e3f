package relation

import "github.com/tinydb/engine/internal/storage"

// Relation is a locator plus a human-readable name and a handle to
// its storage manager. Immutable after creation; shared by reference
// among callers.
type Relation struct {
	Locator Locator
	Name    string
	Storage *storage.Manager
}

// Open opens (creating if missing) the relation file at locator's
// path under dataDir and returns a shared Relation handle.
func Open(dataDir, name string, locator Locator) (*Relation, error) {
	path, err := locator.Path(dataDir)
	if err != nil {
		return nil, err
	}
	mgr, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	return &Relation{Locator: locator, Name: name, Storage: mgr}, nil
}
