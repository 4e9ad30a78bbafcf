package kv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("favorites"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v err %v, want absent", ok, err)
	}
	if err := s.Set("favorites", `["1"]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set("favorites", `["1","2"]`); err != nil {
		t.Fatalf("Set overwrite returned error: %v", err)
	}
	v, ok, err := s.Get("favorites")
	if err != nil || !ok || v != `["1","2"]` {
		t.Fatalf("Get = %q %v %v, want overwritten value", v, ok, err)
	}
}

func TestFileStore_RoundTripAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "storage.json")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	exerciseStore(t, s)

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if v, ok, _ := reopened.Get("favorites"); !ok || v != `["1","2"]` {
		t.Fatalf("reopened Get = %q %v, want persisted value", v, ok)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".storage-") {
			t.Fatalf("temp file %s left behind", e.Name())
		}
	}
}

func TestFileStore_MalformedFileStartsEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"syntax": "{not json",
		"shape":  `{"favorites": ["5"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "storage.json")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			s, err := OpenFile(path)
			if err != nil {
				t.Fatalf("OpenFile returned error: %v", err)
			}
			if _, ok, _ := s.Get("favorites"); ok {
				t.Fatalf("malformed file should load no keys")
			}
			if s.Recovered() != path+".corrupt" {
				t.Fatalf("Recovered = %q, want %q", s.Recovered(), path+".corrupt")
			}
			kept, err := os.ReadFile(path + ".corrupt")
			if err != nil || string(kept) != body {
				t.Fatalf("corrupt copy = %q, %v; want original bytes", kept, err)
			}

			if err := s.Set("favorites", `["1"]`); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			reopened, err := OpenFile(path)
			if err != nil {
				t.Fatalf("reopen returned error: %v", err)
			}
			if reopened.Recovered() != "" {
				t.Fatalf("reopen recovered %q, want clean load", reopened.Recovered())
			}
		})
	}
}

func TestFileStore_EmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if _, ok, _ := s.Get("favorites"); ok {
		t.Fatalf("empty file should have no keys")
	}
}

func TestSQLiteStore_RoundTripAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	exerciseStore(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if v, ok, _ := reopened.Get("favorites"); !ok || v != `["1","2"]` {
		t.Fatalf("reopened Get = %q %v, want persisted value", v, ok)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("Open(file) returned error: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("Open(\"\") = %T, want *FileStore", s)
	}

	s, err = Open("SQLite", filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatalf("Open(sqlite) returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if _, ok := s.(*SQLiteStore); !ok {
		t.Fatalf("Open(SQLite) = %T, want *SQLiteStore", s)
	}

	if _, err := Open("redis", "x"); err == nil {
		t.Fatalf("Open(redis) returned nil error, want error")
	}
	if _, err := OpenFile(" "); err == nil {
		t.Fatalf("OpenFile(blank) returned nil error, want error")
	}
}
