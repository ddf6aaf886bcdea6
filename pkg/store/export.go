package store

import (
	"encoding/json"
	"fmt"

	"arenadb/pkg/logger"
	"arenadb/pkg/models"
)

// ExportEnvelope is the interchange shape for thread batches.
type ExportEnvelope struct {
	TesterID   string                `json:"testerId"`
	ExportTime int64                 `json:"exportTime"`
	Threads    []models.ThreadRecord `json:"threads"`
}

// Export serializes the full thread set as indented JSON.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := ExportEnvelope{
		TesterID:   s.state.Config.TesterID,
		ExportTime: nowMillis(),
		Threads:    s.state.Threads,
	}
	if env.Threads == nil {
		env.Threads = []models.ThreadRecord{}
	}
	return json.MarshalIndent(env, "", "  ")
}

// Import merges an externally supplied batch into the store. The payload may
// carry the current `threads` shape or the legacy `matches` shape. Import is
// all-or-nothing: a malformed or empty batch returns ErrImport with no
// mutation. Records present on both sides are resolved last-write-wins with
// the incoming copy; the merged set is resorted by creation time ascending.
func (s *Store) Import(data []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}

	list, ok := payload["threads"].([]any)
	if !ok {
		list, ok = payload["matches"].([]any)
	}
	if !ok || len(list) == 0 {
		return fmt.Errorf("%w: no threads in payload", ErrImport)
	}

	incoming := make([]models.ThreadRecord, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: thread entry is not an object", ErrImport)
		}
		t := NormalizeThread(m)
		if t.ID == "" {
			return fmt.Errorf("%w: thread entry missing id", ErrImport)
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = nowMillis()
			t.UpdatedAt = t.CreatedAt
		}
		incoming = append(incoming, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]int, len(s.state.Threads))
	for i, t := range s.state.Threads {
		merged[t.ID] = i
	}
	for _, t := range incoming {
		if i, ok := merged[t.ID]; ok {
			s.state.Threads[i] = t
			continue
		}
		merged[t.ID] = len(s.state.Threads)
		s.state.Threads = append(s.state.Threads, t)
	}
	s.sortThreadsLocked()

	if err := s.flushLocked(); err != nil {
		return err
	}
	logger.Info("threads_imported", "incoming", len(incoming), "total", len(s.state.Threads))
	return nil
}
