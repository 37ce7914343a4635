package distributor

import (
	"sync"
	"time"
)

// DefaultCooldownWindow is how long a requester must wait before receiving
// another grant to the same address.
const DefaultCooldownWindow = 60 * time.Second

// CooldownEntry records the last successful grant for a requester.
type CooldownEntry struct {
	Address   string    `json:"address"`
	GrantedAt time.Time `json:"granted_at"`
}

// CooldownStore persists guard state across restarts. Implementations may
// be nil-equivalent no-ops; the guard works fully in memory without one.
type CooldownStore interface {
	Load() (map[string]CooldownEntry, error)
	Save(entries map[string]CooldownEntry) error
}

// CooldownGuard rejects repeat grants to the same (requester, address) pair
// inside the window. State is partitioned by requester key and mutated only
// on recorded successes.
type CooldownGuard struct {
	window time.Duration
	store  CooldownStore

	mu      sync.Mutex
	entries map[string]CooldownEntry
}

// NewCooldownGuard builds a guard, restoring persisted state when a store is
// supplied.
func NewCooldownGuard(window time.Duration, store CooldownStore) (*CooldownGuard, error) {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	g := &CooldownGuard{
		window:  window,
		store:   store,
		entries: make(map[string]CooldownEntry),
	}
	if store != nil {
		restored, err := store.Load()
		if err != nil {
			return nil, err
		}
		for k, v := range restored {
			g.entries[k] = v
		}
	}
	return g, nil
}

// Admit reports whether a request may proceed. It rejects only when the
// requester's last recorded grant went to the same address inside the
// window; a different address is always admitted. Admit never mutates state.
func (g *CooldownGuard) Admit(requesterID, address string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[requesterID]
	if !ok {
		return true
	}
	if entry.Address != address {
		return true
	}
	return now.Sub(entry.GrantedAt) >= g.window
}

// RecordSuccess stores the grant; callers invoke it only after at least one
// batch produced a transaction hash.
func (g *CooldownGuard) RecordSuccess(requesterID, address string, now time.Time) {
	g.mu.Lock()
	g.entries[requesterID] = CooldownEntry{Address: address, GrantedAt: now}
	snapshot := g.snapshotLocked()
	store := g.store
	g.mu.Unlock()

	if store != nil {
		// Persistence is best-effort; a write failure must not undo an
		// already-granted distribution.
		_ = store.Save(snapshot)
	}
}

func (g *CooldownGuard) snapshotLocked() map[string]CooldownEntry {
	out := make(map[string]CooldownEntry, len(g.entries))
	for k, v := range g.entries {
		out[k] = v
	}
	return out
}
