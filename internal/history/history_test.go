package history

import (
	"path/filepath"
	"testing"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	lines := []string{`(+ 1 2)`, `(. "hi")`, `(def x 10)`}
	for _, l := range lines {
		if err := store.Append(l); err != nil {
			t.Fatalf("append %q: %v", l, err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []string{`(. "hi")`, `(def x 10)`}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRecentOnEmptyStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}
