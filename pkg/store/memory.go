package store

import "sync"

// MemoryPort is an in-memory Persistence implementation for tests and
// ephemeral runs.
type MemoryPort struct {
	mu  sync.Mutex
	raw []byte
	ok  bool
}

func NewMemoryPort() *MemoryPort { return &MemoryPort{} }

func (m *MemoryPort) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, false, nil
	}
	out := make([]byte, len(m.raw))
	copy(out, m.raw)
	return out, true, nil
}

func (m *MemoryPort) Save(raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = make([]byte, len(raw))
	copy(m.raw, raw)
	m.ok = true
	return nil
}

func (m *MemoryPort) Close() error { return nil }
