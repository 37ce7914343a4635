package secretlog

import (
	"strings"
	"sync"
)

const redactedValue = "[REDACTED]"

// Scrubber removes registered secret values from outbound strings. The
// distributor signing secret is registered once at startup; every error or
// reply text that may have been built from a raw ledger response passes
// through Scrub before it leaves the process.
type Scrubber struct {
	mu      sync.RWMutex
	secrets []string
}

func NewScrubber(secrets ...string) *Scrubber {
	s := &Scrubber{}
	for _, secret := range secrets {
		s.Register(secret)
	}
	return s
}

// Register adds a secret value to scrub. Short values are ignored so that a
// degenerate secret cannot blank out ordinary text.
func (s *Scrubber) Register(secret string) {
	secret = strings.TrimSpace(secret)
	if len(secret) < 8 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.secrets {
		if existing == secret {
			return
		}
	}
	s.secrets = append(s.secrets, secret)
}

// Scrub replaces every occurrence of each registered secret in text.
func (s *Scrubber) Scrub(text string) string {
	if s == nil {
		return text
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, secret := range s.secrets {
		text = strings.ReplaceAll(text, secret, redactedValue)
	}
	return text
}

// ScrubError is a convenience for error messages; nil stays nil-safe by
// returning the empty string.
func (s *Scrubber) ScrubError(err error) string {
	if err == nil {
		return ""
	}
	return s.Scrub(err.Error())
}
