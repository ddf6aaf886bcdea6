package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"arenadb/pkg/logger"
)

var stateKey = []byte("arena:state")

// PebblePort persists the arena state in a Pebble database.
type PebblePort struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a Pebble database at the given path.
func OpenPebble(path string) (*PebblePort, error) {
	logger.Info("opening_pebble_db", "path", path)
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &PebblePort{db: db}, nil
}

func (p *PebblePort) Load() ([]byte, bool, error) {
	val, closer, err := p.db.Get(stateKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load arena state: %w", err)
	}
	out := make([]byte, len(val))
	copy(out, val)
	if err := closer.Close(); err != nil {
		return nil, false, fmt.Errorf("close state value: %w", err)
	}
	return out, true, nil
}

func (p *PebblePort) Save(raw []byte) error {
	if err := p.db.Set(stateKey, raw, pebble.Sync); err != nil {
		return fmt.Errorf("save arena state: %w", err)
	}
	return nil
}

func (p *PebblePort) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		return err
	}
	logger.Info("pebble_closed")
	return nil
}
