package store

// Persistence is the injected port the store aggregate flushes through. The
// whole arena state is saved as one record: every mutating call is a
// read-modify-write of the aggregate followed by a flush, so a crash can
// lose at most the call in flight, never corrupt the set.
type Persistence interface {
	// Load returns the raw persisted state, with ok=false when nothing has
	// been persisted yet.
	Load() ([]byte, bool, error)
	Save(raw []byte) error
	Close() error
}
