// Package state persists the whole document as a single JSON file and owns
// the load-time boundary work: schema validation, versioned migration,
// normalization, and export/import.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"levelup/internal/model"
)

const stateFile = "state.json"

// FileRepo is the persistent home of the state document. Reducers never see
// it; the app layer loads a snapshot, applies a transition, and puts the
// result back.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    *model.State
}

func NewFileRepo(dataDir string, now time.Time) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, stateFile)}
	if err := r.load(now); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = model.NewState(now)
			return nil
		}
		return err
	}

	var loaded model.State
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("parse state document: %w", err)
	}
	if err := Migrate(&loaded, now); err != nil {
		return err
	}
	if err := Validate(&loaded); err != nil {
		return fmt.Errorf("invalid state document: %w", err)
	}
	loaded.Normalize()
	r.s = &loaded
	return nil
}

// Get returns a deep copy; callers mutate freely and Put the result back.
func (r *FileRepo) Get() *model.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.Clone()
}

// Put replaces the stored document and writes it to disk.
func (r *FileRepo) Put(s *model.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s.Clone()
	return r.saveLocked()
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
