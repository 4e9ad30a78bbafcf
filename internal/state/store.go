package state

import (
	"sync"
	"time"

	"github.com/recetasfaciles/recetas/internal/recipe"
)

// Kind identifies the fetch a ticket was issued for.
type Kind int

const (
	KindRandom Kind = iota
	KindSearch
	KindCategory
	KindByID
)

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindSearch:
		return "search"
	case KindCategory:
		return "category"
	case KindByID:
		return "by_id"
	default:
		return "unknown"
	}
}

// DefaultError is the message recorded when a fetch of kind k is rejected
// without a reason.
func (k Kind) DefaultError() string {
	switch k {
	case KindSearch:
		return "Error searching recipes"
	case KindCategory:
		return "Error fetching recipes by category"
	case KindByID:
		return "Error fetching recipe"
	default:
		return "Error fetching recipes"
	}
}

func (k Kind) collection() bool { return k != KindByID }

// Ticket is issued by Begin and settles exactly one fetch.
type Ticket struct {
	Kind Kind
	gen  uint64
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Recipes     []recipe.Recipe
	Current     *recipe.Recipe
	Loading     bool
	Err         string
	SearchTerm  string
	HasSearched bool
	LastKind    Kind
	LastUpdated time.Time
}

// Store coordinates concurrent updates to the snapshot.
//
// Collection fetches (random, search, category) share one generation counter
// and by-id fetches have another. Only the newest ticket of a lane may
// settle it; older completions are discarded.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	listGen     uint64
	listOpen    bool
	currentGen  uint64
	currentOpen bool
}

// Begin enters the pending phase for a fetch of kind: loading is set and the
// error cleared.
func (s *Store) Begin(kind Kind) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Ticket{Kind: kind}
	if kind.collection() {
		s.listGen++
		s.listOpen = true
		t.gen = s.listGen
	} else {
		s.currentGen++
		s.currentOpen = true
		t.gen = s.currentGen
	}
	s.snapshot.Loading = true
	s.snapshot.Err = ""
	return t
}

// Fulfill replaces the collection with the deduplicated batch. It reports
// false and changes nothing when t has been superseded.
func (s *Store) Fulfill(t Ticket, recipes []recipe.Recipe) bool {
	if !t.Kind.collection() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settle(t) {
		return false
	}
	batch := recipe.Dedupe(recipes)
	for i := range batch {
		batch[i] = batch[i].Clone()
	}
	s.snapshot.Recipes = batch
	s.snapshot.HasSearched = t.Kind != KindRandom
	s.snapshot.LastKind = t.Kind
	s.snapshot.LastUpdated = time.Now()
	return true
}

// FulfillCurrent sets the current recipe from a by-id fetch. A nil r clears
// the slot.
func (s *Store) FulfillCurrent(t Ticket, r *recipe.Recipe) bool {
	if t.Kind != KindByID {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settle(t) {
		return false
	}
	s.snapshot.Current = cloneRecipe(r)
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Reject records the failure of t. The previous data is kept.
func (s *Store) Reject(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settle(t) {
		return false
	}
	msg := t.Kind.DefaultError()
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	s.snapshot.Err = msg
	s.snapshot.LastUpdated = time.Now()
	return true
}

// SetSearchTerm records the text of the search box.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	s.snapshot.SearchTerm = term
	s.mu.Unlock()
}

// ClearCurrent empties the current recipe slot. A by-id fetch still in
// flight is abandoned.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Current = nil
	if s.currentOpen {
		s.currentGen++
		s.currentOpen = false
		s.snapshot.Loading = s.listOpen
	}
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.snapshot.Err = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if len(s.snapshot.Recipes) > 0 {
		snap.Recipes = make([]recipe.Recipe, len(s.snapshot.Recipes))
		for i, r := range s.snapshot.Recipes {
			snap.Recipes[i] = r.Clone()
		}
	}
	snap.Current = cloneRecipe(s.snapshot.Current)
	return snap
}

// settle closes the lane of t if t is its newest ticket. Caller holds s.mu.
func (s *Store) settle(t Ticket) bool {
	if t.Kind.collection() {
		if !s.listOpen || t.gen != s.listGen {
			return false
		}
		s.listOpen = false
	} else {
		if !s.currentOpen || t.gen != s.currentGen {
			return false
		}
		s.currentOpen = false
	}
	s.snapshot.Loading = s.listOpen || s.currentOpen
	return true
}

func cloneRecipe(r *recipe.Recipe) *recipe.Recipe {
	if r == nil {
		return nil
	}
	dup := r.Clone()
	return &dup
}
