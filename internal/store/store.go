package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRating  = errors.New("rating must be between 0 and 5")
	ErrNameRequired   = errors.New("recipe name is required")
)

// Store is a file-backed recipe collection: one JSON document per recipe
// in a single folder. The folder is the unit of sync — point it at an
// iCloud Drive or Syncthing directory and every device sees the same
// recipes. All reads are served from an in-memory index; every write goes
// to disk first (temp file + rename), then updates the index.
type Store struct {
	mu      sync.RWMutex
	dir     string
	recipes map[string]*recipeRecord

	// selfWrites lets the change watcher tell our own writes apart from
	// files modified by an external sync
	selfMu     sync.Mutex
	selfWrites map[string]time.Time
}

// Open opens the recipe folder, creating it if needed, and loads every
// recipe file into memory. Files that fail to parse are skipped with a
// warning so one corrupted document can't take the whole collection down.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recipe folder: %w", err)
	}

	s := &Store{
		dir:        dir,
		recipes:    make(map[string]*recipeRecord),
		selfWrites: make(map[string]time.Time),
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the recipe folder path
func (s *Store) Dir() string {
	return s.dir
}

// Count returns the number of loaded recipes
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Reload re-reads the whole folder, replacing the in-memory index.
// Called at startup and by the change watcher after external edits.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read recipe folder: %w", err)
	}

	recipes := make(map[string]*recipeRecord)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		rec, err := readRecipeFile(path)
		if err != nil {
			log.Printf("Warning: skipping unreadable recipe file %s: %v", entry.Name(), err)
			continue
		}
		recipes[rec.recipe.ID] = rec
	}

	s.mu.Lock()
	s.recipes = recipes
	s.mu.Unlock()
	return nil
}

// ReloadFile re-reads a single recipe file after an external change.
// A missing file means the recipe was deleted elsewhere and is dropped
// from the index.
func (s *Store) ReloadFile(path string) error {
	rec, err := readRecipeFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.dropByPath(path)
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.recipes[rec.recipe.ID] = rec
	s.mu.Unlock()
	return nil
}

// dropByPath removes whatever recipe was loaded from the given file
func (s *Store) dropByPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.recipes {
		if rec.path == path {
			delete(s.recipes, id)
			return
		}
	}
}

// recipePath returns the file backing a recipe ID
func (s *Store) recipePath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// markSelfWrite records that the next filesystem event for this path is
// our own doing
func (s *Store) markSelfWrite(path string) {
	s.selfMu.Lock()
	s.selfWrites[path] = time.Now()
	s.selfMu.Unlock()
}

// WasSelfWrite reports whether the path was written by this process
// recently. Entries expire so that a later external edit of the same file
// is still noticed.
func (s *Store) WasSelfWrite(path string, within time.Duration) bool {
	s.selfMu.Lock()
	defer s.selfMu.Unlock()
	t, ok := s.selfWrites[path]
	if !ok {
		return false
	}
	if time.Since(t) > within {
		delete(s.selfWrites, path)
		return false
	}
	return true
}
