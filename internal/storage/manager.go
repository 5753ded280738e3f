package storage

// Manager is a one-to-one handle per open relation wrapping a
// DiskManager, so higher layers carry a Relation value rather than a
// raw file descriptor.
type Manager struct {
	disk *DiskManager
}

// Open opens the relation file at path.
func Open(path string) (*Manager, error) {
	dm, err := OpenDiskManager(path)
	if err != nil {
		return nil, err
	}
	return &Manager{disk: dm}, nil
}

// Read forwards to the disk manager.
func (m *Manager) Read(pageNo uint32, out []byte) error {
	return m.disk.ReadPage(pageNo, out)
}

// Write forwards to the disk manager.
func (m *Manager) Write(pageNo uint32, buf []byte) error {
	return m.disk.WritePage(pageNo, buf)
}

// Extend allocates a new page and returns its number.
func (m *Manager) Extend() (uint32, error) {
	return m.disk.AllocatePage()
}

// Size returns the relation's total page count.
func (m *Manager) Size() uint32 {
	return m.disk.Size()
}

// Close closes the underlying file handle.
func (m *Manager) Close() error {
	return m.disk.Close()
}
