package distributor

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCooldownGuardScenario(t *testing.T) {
	t.Parallel()

	g, err := NewCooldownGuard(60*time.Second, nil)
	if err != nil {
		t.Fatalf("NewCooldownGuard: %v", err)
	}
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

	if !g.Admit("1", "A", at(0)) {
		t.Fatal("fresh requester must be admitted")
	}
	g.RecordSuccess("1", "A", at(0))

	if g.Admit("1", "A", at(30)) {
		t.Fatal("same address inside the window must be rejected")
	}
	if !g.Admit("1", "B", at(30)) {
		t.Fatal("a different address is always admitted")
	}
	if !g.Admit("1", "A", at(61)) {
		t.Fatal("same address after the window must be admitted")
	}
	if !g.Admit("2", "A", at(30)) {
		t.Fatal("state must be partitioned by requester")
	}
}

func TestCooldownAdmitDoesNotMutate(t *testing.T) {
	t.Parallel()

	g, err := NewCooldownGuard(60*time.Second, nil)
	if err != nil {
		t.Fatalf("NewCooldownGuard: %v", err)
	}
	now := time.Now()
	g.RecordSuccess("1", "A", now)

	// Rejected admits must not refresh the window.
	g.Admit("1", "A", now.Add(30*time.Second))
	if !g.Admit("1", "A", now.Add(61*time.Second)) {
		t.Fatal("rejected admit refreshed the cooldown window")
	}
}

func TestFileCooldownStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "cooldown.enc")
	store, err := NewFileCooldownStore(path, "store pass")
	if err != nil {
		t.Fatalf("NewFileCooldownStore: %v", err)
	}

	g, err := NewCooldownGuard(60*time.Second, store)
	if err != nil {
		t.Fatalf("NewCooldownGuard: %v", err)
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g.RecordSuccess("1", "A", now)

	restored, err := NewCooldownGuard(60*time.Second, store)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Admit("1", "A", now.Add(30*time.Second)) {
		t.Fatal("restored guard should still reject inside the window")
	}
	if !restored.Admit("1", "A", now.Add(90*time.Second)) {
		t.Fatal("restored guard should admit after the window")
	}
}

func TestFileCooldownStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewFileCooldownStore(filepath.Join(t.TempDir(), "absent.enc"), "pass")
	if err != nil {
		t.Fatalf("NewFileCooldownStore: %v", err)
	}
	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("missing file should yield empty state, got %v", entries)
	}
}

func TestNewFileCooldownStoreValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewFileCooldownStore("", "pass"); err == nil {
		t.Fatal("empty path must be rejected")
	}
	if _, err := NewFileCooldownStore("/tmp/x", "  "); err == nil {
		t.Fatal("blank passphrase must be rejected")
	}
}
