package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNoopMedium(t *testing.T) {
	var m Noop
	if err := m.Save("forms", []byte("payload")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, err := m.Load("forms"); ok || err != nil {
		t.Fatalf("noop load = %v/%v, want absent", ok, err)
	}
}

func TestMemoryMediumCopiesPayloads(t *testing.T) {
	m := NewMemory()

	payload := []byte("original")
	if err := m.Save("forms", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'X'

	loaded, ok, err := m.Load("forms")
	if err != nil || !ok {
		t.Fatalf("load = %v/%v", ok, err)
	}
	if string(loaded) != "original" {
		t.Fatalf("stored payload mutated: %q", loaded)
	}

	loaded[0] = 'Y'
	again, _, _ := m.Load("forms")
	if string(again) != "original" {
		t.Fatalf("loaded payload aliases the store: %q", again)
	}

	if _, ok, _ := m.Load("missing"); ok {
		t.Fatal("unknown key must be absent")
	}
}

func TestFileMedium(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFile(filepath.Join(dir, "nested", "data"))
	if err != nil {
		t.Fatalf("new file medium: %v", err)
	}

	if _, ok, err := m.Load("forms"); ok || err != nil {
		t.Fatalf("fresh load = %v/%v, want absent", ok, err)
	}

	if err := m.Save("forms", []byte(`{"forms":[]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := m.Load("forms")
	if err != nil || !ok {
		t.Fatalf("load = %v/%v", ok, err)
	}
	if string(loaded) != `{"forms":[]}` {
		t.Fatalf("payload = %q", loaded)
	}

	// Overwrite replaces the whole document.
	if err := m.Save("forms", []byte(`{}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	loaded, _, _ = m.Load("forms")
	if string(loaded) != `{}` {
		t.Fatalf("payload after overwrite = %q", loaded)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "nested", "data"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("data dir entries = %v/%v, want the single document", entries, err)
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	type snapshot struct {
		Names []string `json:"names"`
	}

	col := NewCollection[snapshot](NewMemory(), "names")

	if _, ok, err := col.Load(); ok || err != nil {
		t.Fatalf("fresh collection = %v/%v, want absent", ok, err)
	}

	if err := col.Save(snapshot{Names: []string{"a", "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := col.Load()
	if err != nil || !ok {
		t.Fatalf("load = %v/%v", ok, err)
	}
	if len(loaded.Names) != 2 || loaded.Names[0] != "a" {
		t.Fatalf("snapshot = %+v", loaded)
	}

	// A nil medium degrades to the noop medium.
	quiet := NewCollection[snapshot](nil, "names")
	if err := quiet.Save(snapshot{}); err != nil {
		t.Fatalf("noop-backed save: %v", err)
	}
	if _, ok, _ := quiet.Load(); ok {
		t.Fatal("noop-backed collection must stay empty")
	}

	// Corrupt payloads surface as decode errors.
	medium := NewMemory()
	if err := medium.Save("names", []byte("{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := NewCollection[snapshot](medium, "names").Load(); err == nil {
		t.Fatal("corrupt payload must error")
	}
}
