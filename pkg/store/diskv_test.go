package store

import (
	"context"
	"errors"
	"testing"
)

func TestPersistenceRoundTrip(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if _, err := p.Read(KeyEntries); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}
	if p.Has(KeyEntries) {
		t.Fatalf("expected Has to be false before first write")
	}

	if err := p.Write(KeyEntries, `[{"id":"a"}]`); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.Write(KeyUserName, "Ada"); err != nil {
		t.Fatalf("write: %v", err)
	}

	// A second handle on the same directory sees what the first wrote.
	reopened, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("reload persistence: %v", err)
	}
	got, err := reopened.Read(KeyEntries)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != `[{"id":"a"}]` {
		t.Fatalf("unexpected value %q", got)
	}

	keys := reopened.Keys(context.Background())
	if len(keys) != 2 || keys[0] != KeyEntries || keys[1] != KeyUserName {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := reopened.Erase(KeyUserName); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if err := reopened.Erase(KeyUserName); err != nil {
		t.Fatalf("erase of missing key should be a no-op: %v", err)
	}
	if reopened.Has(KeyUserName) {
		t.Fatalf("expected key to be erased")
	}
}

func TestReadSeesOtherHandleWrites(t *testing.T) {
	base := t.TempDir()
	a, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	b, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if err := a.Write(KeyEntries, "first"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, err := a.Read(KeyEntries); err != nil || got != "first" {
		t.Fatalf("read: %q %v", got, err)
	}

	if err := b.Write(KeyEntries, "second"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := a.Read(KeyEntries)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "second" {
		t.Fatalf("stale read: got %q, want %q", got, "second")
	}

	if err := b.Erase(KeyEntries); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if _, err := a.Read(KeyEntries); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after erase elsewhere, got %v", err)
	}
}

func TestPersistenceRejectsBadKeys(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	for _, key := range []string{"", "  ", "a/b", `a\b`} {
		if err := p.Write(key, "x"); err == nil {
			t.Fatalf("expected error writing key %q", key)
		}
	}
}

func TestLoadRequiresBasePath(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := Load(testConfig{}); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
