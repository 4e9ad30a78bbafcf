package favorites

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/recetasfaciles/recetas/internal/kv"
	"github.com/recetasfaciles/recetas/internal/recipe"
)

type memStore struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Close() error { return nil }

func TestToggle_RoundTripPersistsEachTime(t *testing.T) {
	mem := newMemStore()
	s := Load(mem, nil)

	on, err := s.Toggle("5")
	if err != nil || !on {
		t.Fatalf("Toggle(5) = %v, %v; want true, nil", on, err)
	}
	if !s.IsFavorite("5") {
		t.Fatalf("IsFavorite(5) = false after first toggle")
	}
	if mem.values[StorageKey] != `["5"]` {
		t.Fatalf("persisted = %q, want [\"5\"]", mem.values[StorageKey])
	}

	on, err = s.Toggle("5")
	if err != nil || on {
		t.Fatalf("second Toggle(5) = %v, %v; want false, nil", on, err)
	}
	if s.IsFavorite("5") {
		t.Fatalf("IsFavorite(5) = true after second toggle")
	}
	if mem.values[StorageKey] != `[]` {
		t.Fatalf("persisted = %q, want []", mem.values[StorageKey])
	}
	if mem.sets != 2 {
		t.Fatalf("storage writes = %d, want 2", mem.sets)
	}
}

func TestToggle_KeepsInsertionOrder(t *testing.T) {
	s := Load(newMemStore(), nil)
	for _, id := range []string{"3", "1", "2"} {
		if _, err := s.Toggle(id); err != nil {
			t.Fatalf("Toggle(%s): %v", id, err)
		}
	}
	_, _ = s.Toggle("1")
	ids := s.IDs()
	if len(ids) != 2 || ids[0] != "3" || ids[1] != "2" || s.Count() != 2 {
		t.Fatalf("IDs = %v count %d, want [3 2]", ids, s.Count())
	}
}

func TestLoad_ReadsPersistedSetAndCollapsesDuplicates(t *testing.T) {
	mem := newMemStore()
	mem.values[StorageKey] = `["1","2","1"]`
	s := Load(mem, nil)
	if s.Count() != 2 || !s.IsFavorite("1") || !s.IsFavorite("2") {
		t.Fatalf("loaded ids = %v, want [1 2]", s.IDs())
	}
}

func TestLoad_MalformedOrUnreadableIsEmpty(t *testing.T) {
	for _, raw := range []string{"{oops", `{"a":1}`, `"5"`, `[1,2]`} {
		mem := newMemStore()
		mem.values[StorageKey] = raw
		if s := Load(mem, nil); s.Count() != 0 {
			t.Fatalf("Load(%q) count = %d, want 0", raw, s.Count())
		}
	}

	mem := newMemStore()
	mem.getErr = errors.New("disk gone")
	if s := Load(mem, nil); s.Count() != 0 {
		t.Fatalf("Load with read error count = %d, want 0", s.Count())
	}
}

func TestToggle_PersistFailureReturnsError(t *testing.T) {
	mem := newMemStore()
	mem.setErr = errors.New("read-only")
	s := Load(mem, nil)

	on, err := s.Toggle("9")
	if err == nil {
		t.Fatalf("Toggle returned nil error, want save failure")
	}
	if !on || !s.IsFavorite("9") {
		t.Fatalf("in-memory toggle should stand after a save failure")
	}
}

func TestFilter_KeepsFavoritesInOrder(t *testing.T) {
	s := Load(newMemStore(), nil)
	_, _ = s.Toggle("b")
	_, _ = s.Toggle("c")

	in := []recipe.Recipe{{ID: "a"}, {ID: "c"}, {ID: "b"}, {ID: "c"}}
	got := s.Filter(in)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("Filter = %#v, want [c b]", got)
	}
}

func TestStore_SurvivesRestartWithFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	storage, err := kv.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	s := Load(storage, nil)
	_, _ = s.Toggle("52772")
	_, _ = s.Toggle("52773")

	reopened, err := kv.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	restarted := Load(reopened, nil)
	if restarted.Count() != 2 || !restarted.IsFavorite("52772") {
		t.Fatalf("restarted ids = %v, want both favorites", restarted.IDs())
	}
}
