// Package favorites owns the persisted set of favorite recipe ids. It is the
// only reader and writer of the "favorites" key in local storage.
package favorites

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/recetasfaciles/recetas/internal/kv"
	"github.com/recetasfaciles/recetas/internal/recipe"
)

// StorageKey is the key the set is persisted under, as a JSON array of ids.
const StorageKey = "favorites"

// Store is the in-memory favorite set, kept in insertion order.
type Store struct {
	mu      sync.RWMutex
	storage kv.Store
	log     *zap.Logger
	ids     []string
	index   map[string]struct{}
}

// Load reads the persisted set. Absent, unreadable or malformed data yields
// an empty set and a warning; it is never fatal.
func Load(storage kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		storage: storage,
		log:     log.Named("favorites"),
		index:   make(map[string]struct{}),
	}

	raw, ok, err := storage.Get(StorageKey)
	switch {
	case err != nil:
		s.log.Warn("favorites unreadable, starting empty", zap.Error(err))
		return s
	case !ok:
		return s
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("favorites malformed, starting empty", zap.Error(err))
		return s
	}
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	s.log.Debug("favorites loaded", zap.Int("count", len(s.ids)))
	return s
}

// Toggle flips membership of id and persists the full set before returning.
// It reports whether id is a favorite afterwards. A persistence failure is
// returned, but the in-memory change stands.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present := s.index[id]
	if present {
		delete(s.index, id)
		for i, v := range s.ids {
			if v == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
	} else {
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}

	if err := s.persist(); err != nil {
		s.log.Error("favorites not saved", zap.String("id", id), zap.Error(err))
		return !present, err
	}
	return !present, nil
}

// IsFavorite reports membership.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Count returns the set size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the favorite ids in the order they were added.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Filter keeps the favorited recipes, in input order, each id once.
func (s *Store) Filter(recipes []recipe.Recipe) []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []recipe.Recipe
	seen := make(map[string]struct{})
	for _, r := range recipes {
		if _, fav := s.index[r.ID]; !fav {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Caller holds s.mu.
func (s *Store) persist() error {
	ids := s.ids
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
