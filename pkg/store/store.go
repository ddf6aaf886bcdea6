package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"arenadb/pkg/logger"
	"arenadb/pkg/models"
	"arenadb/pkg/utils"
)

var (
	// ErrNotFound is returned for operations against a missing thread.
	ErrNotFound = errors.New("thread not found")
	// ErrImport is returned for malformed import payloads; nothing is
	// mutated when it is returned.
	ErrImport = errors.New("invalid import payload")
)

const (
	defaultBackupIntervalDays = 3
	maxTitleRunes             = 32
)

// Store is the durable aggregate of comparison threads. It is constructed
// once at process start and flushes the whole state through its persistence
// port on every mutating call.
type Store struct {
	mu    sync.Mutex
	port  Persistence
	state State
}

// Open loads (and migrates, if needed) persisted state through the port.
func Open(port Persistence) (*Store, error) {
	s := &Store{port: port}

	raw, ok, err := port.Load()
	if err != nil {
		return nil, err
	}
	if ok {
		var probe struct {
			SchemaVersion int `json:"schemaVersion"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("decode persisted state: %w", err)
		}
		var generic map[string]any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("decode persisted state: %w", err)
		}
		s.state = Migrate(generic, probe.SchemaVersion)
		if probe.SchemaVersion != SchemaVersion {
			logger.Info("arena_state_migrated", "from", probe.SchemaVersion, "to", SchemaVersion)
		}
	} else {
		s.state = State{SchemaVersion: SchemaVersion}
	}

	if s.state.Config.TesterID == "" {
		s.state.Config.TesterID = utils.GenThreadID()
	}
	if s.state.Config.BackupIntervalDays <= 0 {
		s.state.Config.BackupIntervalDays = defaultBackupIntervalDays
	}
	s.sortThreadsLocked()

	if err := s.flushLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close flushes nothing further and closes the port.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}

func (s *Store) flushLocked() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode arena state: %w", err)
	}
	return s.port.Save(raw)
}

func (s *Store) sortThreadsLocked() {
	sort.SliceStable(s.state.Threads, func(i, j int) bool {
		return s.state.Threads[i].CreatedAt < s.state.Threads[j].CreatedAt
	})
}

func (s *Store) findLocked(id string) *models.ThreadRecord {
	for i := range s.state.Threads {
		if s.state.Threads[i].ID == id {
			return &s.state.Threads[i]
		}
	}
	return nil
}

func nowMillis() int64 { return time.Now().UnixMilli() }

// StartThread creates a new active thread and focuses it.
func (s *Store) StartThread(sessionRefA, sessionRefB string, variantA, variantB map[string]any, isBlind bool) (models.ThreadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowMillis()
	t := models.ThreadRecord{
		ID:          utils.GenThreadID(),
		CreatedAt:   now,
		UpdatedAt:   now,
		TesterID:    s.state.Config.TesterID,
		SessionRefA: sessionRefA,
		SessionRefB: sessionRefB,
		VariantA:    variantA,
		VariantB:    variantB,
		Turns:       []models.TurnRecord{},
		WasBlind:    isBlind,
	}
	s.state.Threads = append(s.state.Threads, t)
	s.state.CurrentThreadID = t.ID

	if err := s.flushLocked(); err != nil {
		return models.ThreadRecord{}, err
	}
	logger.Info("thread_started", "thread", t.ID, "blind", isBlind)
	return t, nil
}

// RecordTurn appends an immutable turn to an existing thread, deriving the
// title from the first turn's user input. The optional internal metadata is
// shallow-merged into the thread's research metadata.
func (s *Store) RecordTurn(threadID, userInput, responseA, responseB string, internal map[string]any) (models.ThreadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(threadID)
	if t == nil {
		return models.ThreadRecord{}, fmt.Errorf("%w: %s", ErrNotFound, threadID)
	}

	now := nowMillis()
	if t.Title == "" {
		t.Title = normalizeTitle(userInput)
	}
	t.UpdatedAt = now
	t.Turns = append(t.Turns, models.TurnRecord{
		UserInput: userInput,
		ResponseA: responseA,
		ResponseB: responseB,
		Timestamp: now,
	})
	if len(internal) > 0 {
		if t.Internal == nil {
			t.Internal = map[string]any{}
		}
		for k, v := range internal {
			t.Internal[k] = v
		}
	}

	if err := s.flushLocked(); err != nil {
		return models.ThreadRecord{}, err
	}
	logger.Info("turn_recorded", "thread", t.ID, "turns", len(t.Turns))
	return *t, nil
}

// SubmitVote locks in the thread's single vote. A second submission against
// an already-voted thread is a no-op, never an overwrite.
func (s *Store) SubmitVote(threadID string, vote models.VoteType) (models.ThreadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidVote(vote) {
		return models.ThreadRecord{}, fmt.Errorf("invalid vote %q", vote)
	}
	t := s.findLocked(threadID)
	if t == nil {
		return models.ThreadRecord{}, fmt.Errorf("%w: %s", ErrNotFound, threadID)
	}
	if t.Voted() {
		return *t, nil
	}

	now := nowMillis()
	t.Vote = &vote
	t.VotedAt = &now
	t.UpdatedAt = now

	if err := s.flushLocked(); err != nil {
		return models.ThreadRecord{}, err
	}
	logger.Info("vote_submitted", "thread", t.ID, "vote", string(vote))
	return *t, nil
}

// SelectThread changes the read-side focus; the thread itself does not
// transition.
func (s *Store) SelectThread(threadID string) (models.ThreadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(threadID)
	if t == nil {
		return models.ThreadRecord{}, fmt.Errorf("%w: %s", ErrNotFound, threadID)
	}
	s.state.CurrentThreadID = threadID
	if err := s.flushLocked(); err != nil {
		return models.ThreadRecord{}, err
	}
	return *t, nil
}

// EndThread drops the focus without touching any thread.
func (s *Store) EndThread() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentThreadID = ""
	return s.flushLocked()
}

// CurrentThreadID returns the focused thread id, if any.
func (s *Store) CurrentThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentThreadID
}

// Thread returns a copy of one thread.
func (s *Store) Thread(id string) (models.ThreadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findLocked(id)
	if t == nil {
		return models.ThreadRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *t, nil
}

// Threads returns a copy of all threads in creation order.
func (s *Store) Threads() []models.ThreadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ThreadRecord, len(s.state.Threads))
	copy(out, s.state.Threads)
	return out
}

// ThreadsSince returns threads created strictly after the given time.
func (s *Store) ThreadsSince(ts int64) []models.ThreadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ThreadRecord
	for _, t := range s.state.Threads {
		if t.CreatedAt > ts {
			out = append(out, t)
		}
	}
	return out
}

// ClearHistory removes every thread. This is the only destructive
// transition in the store.
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Threads = nil
	s.state.CurrentThreadID = ""
	if err := s.flushLocked(); err != nil {
		return err
	}
	logger.Warn("thread_history_cleared")
	return nil
}

// Config returns the process-wide arena configuration.
func (s *Store) Config() models.ArenaConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Config
}

// UpdateConfig applies an explicit configuration mutation and flushes.
func (s *Store) UpdateConfig(apply func(*models.ArenaConfig)) (models.ArenaConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.state.Config)
	if s.state.Config.BackupIntervalDays <= 0 {
		s.state.Config.BackupIntervalDays = defaultBackupIntervalDays
	}
	if err := s.flushLocked(); err != nil {
		return models.ArenaConfig{}, err
	}
	return s.state.Config, nil
}

func normalizeTitle(userInput string) string {
	trimmed := strings.TrimSpace(userInput)
	runes := []rune(trimmed)
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes])
	}
	return trimmed
}
