package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// localSelectionKey is the fixed slot a pending plan choice lives under.
const localSelectionKey = "pending-subscription-selection"

// LocalSelectionStore is a file-backed durable store for the pending plan
// selection. The selection survives process restarts so a choice made
// before login is still there when the user signs in on the next launch.
type LocalSelectionStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalSelectionStore creates a store persisting to the given file. The
// parent directory must exist; the file is created on first save.
func NewLocalSelectionStore(path string) *LocalSelectionStore {
	return &LocalSelectionStore{path: path}
}

func (s *LocalSelectionStore) read() (map[string]Selection, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Selection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read selection store: %w", err)
	}

	slots := map[string]Selection{}
	if err := json.Unmarshal(raw, &slots); err != nil {
		// A corrupt file loses the slot rather than wedging the client
		return map[string]Selection{}, nil
	}
	return slots, nil
}

func (s *LocalSelectionStore) write(slots map[string]Selection) error {
	raw, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode selection store: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot truncate the store
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write selection store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace selection store: %w", err)
	}
	return nil
}

// Save parks the selection in the fixed slot.
func (s *LocalSelectionStore) Save(sel Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return err
	}
	slots[localSelectionKey] = sel
	return s.write(slots)
}

// Load returns the parked selection; found is false when the slot is empty.
func (s *LocalSelectionStore) Load() (Selection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return Selection{}, false, err
	}
	sel, found := slots[localSelectionKey]
	return sel, found, nil
}

// Clear empties the slot. Clearing an absent slot is not an error.
func (s *LocalSelectionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return err
	}
	if _, found := slots[localSelectionKey]; !found {
		return nil
	}
	delete(slots, localSelectionKey)
	if len(slots) == 0 {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove selection store: %w", err)
		}
		return nil
	}
	return s.write(slots)
}

// DefaultSelectionStorePath returns a per-user location for the store file.
func DefaultSelectionStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir = filepath.Join(dir, "markethub")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, "selection.json"), nil
}
