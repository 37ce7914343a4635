package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowPerKeyBurst(t *testing.T) {
	t.Parallel()

	l := New(1, 2, time.Minute)
	now := time.Now()

	if !l.Allow("req-1", now) || !l.Allow("req-1", now) {
		t.Fatal("burst of 2 should be admitted")
	}
	if l.Allow("req-1", now) {
		t.Fatal("third call within the same instant should be rejected")
	}
	if !l.Allow("req-2", now) {
		t.Fatal("a different key must have its own bucket")
	}
}

func TestAllowRefillsOverTime(t *testing.T) {
	t.Parallel()

	l := New(1, 1, time.Minute)
	now := time.Now()

	if !l.Allow("req-1", now) {
		t.Fatal("first call should pass")
	}
	if l.Allow("req-1", now) {
		t.Fatal("bucket should be empty")
	}
	if !l.Allow("req-1", now.Add(1100*time.Millisecond)) {
		t.Fatal("bucket should refill after a second")
	}
}

func TestIdleEntriesAreEvicted(t *testing.T) {
	t.Parallel()

	l := New(10, 10, time.Second)
	now := time.Now()

	l.Allow("stale", now)
	l.Allow("fresh", now.Add(2*time.Second))
	// The sweep runs on the next call after the TTL has elapsed.
	l.Allow("fresh", now.Add(4*time.Second))

	if got := l.Size(); got != 1 {
		t.Fatalf("expected only the fresh key to survive, have %d entries", got)
	}
}

func TestNilAndEmptyKeyAdmit(t *testing.T) {
	t.Parallel()

	var l *KeyedLimiter
	if !l.Allow("anything", time.Now()) {
		t.Fatal("nil limiter must admit")
	}
	if !New(1, 1, time.Minute).Allow("  ", time.Now()) {
		t.Fatal("blank key must admit")
	}
}

func TestInvalidArgsReturnNil(t *testing.T) {
	t.Parallel()

	if New(0, 5, time.Minute) != nil {
		t.Fatal("zero rps must yield nil limiter")
	}
	if New(5, 0, time.Minute) != nil {
		t.Fatal("zero burst must yield nil limiter")
	}
}
