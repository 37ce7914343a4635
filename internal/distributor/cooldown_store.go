package distributor

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"stardrop/go-backend/internal/securestore"
)

// FileCooldownStore persists cooldown state as an encrypted envelope on
// disk. Losing the file only resets cooldowns, so corruption is treated as
// an empty state rather than a startup failure.
type FileCooldownStore struct {
	path       string
	passphrase string
}

func NewFileCooldownStore(path, passphrase string) (*FileCooldownStore, error) {
	path = strings.TrimSpace(path)
	passphrase = strings.TrimSpace(passphrase)
	if path == "" || passphrase == "" {
		return nil, errors.New("cooldown store needs both a path and a passphrase")
	}
	return &FileCooldownStore{path: path, passphrase: passphrase}, nil
}

type persistedCooldownState struct {
	Version int                      `json:"version"`
	Entries map[string]CooldownEntry `json:"entries"`
}

func (s *FileCooldownStore) Load() (map[string]CooldownEntry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]CooldownEntry{}, nil
		}
		return nil, err
	}
	plaintext, err := securestore.Decrypt(s.passphrase, raw)
	if err != nil {
		return map[string]CooldownEntry{}, nil
	}
	var state persistedCooldownState
	if err := json.Unmarshal(plaintext, &state); err != nil || state.Version != 1 {
		return map[string]CooldownEntry{}, nil
	}
	if state.Entries == nil {
		state.Entries = map[string]CooldownEntry{}
	}
	return state.Entries, nil
}

func (s *FileCooldownStore) Save(entries map[string]CooldownEntry) error {
	payload, err := json.Marshal(persistedCooldownState{Version: 1, Entries: entries})
	if err != nil {
		return err
	}
	sealed, err := securestore.Encrypt(s.passphrase, payload)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, sealed, 0o600)
}
