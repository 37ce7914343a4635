package secretlog

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestScrubberRemovesRegisteredSecret(t *testing.T) {
	t.Parallel()

	secret := "SDISTRIBUTORSECRETVALUE123"
	s := NewScrubber(secret)

	raw := fmt.Errorf("submit failed: bad envelope for signer %s", secret)
	got := s.ScrubError(raw)
	if strings.Contains(got, secret) {
		t.Fatalf("scrubbed message still contains secret: %q", got)
	}
	if !strings.Contains(got, redactedValue) {
		t.Fatalf("expected redaction marker in %q", got)
	}
}

func TestScrubberHandlesWrappedErrors(t *testing.T) {
	t.Parallel()

	secret := "SDISTRIBUTORSECRETVALUE123"
	s := NewScrubber(secret)
	inner := errors.New("gateway rejected key " + secret)
	wrapped := fmt.Errorf("attempt 3: %w", inner)

	if got := s.ScrubError(wrapped); strings.Contains(got, secret) {
		t.Fatalf("wrapped error leaked secret: %q", got)
	}
}

func TestScrubberIgnoresShortValues(t *testing.T) {
	t.Parallel()

	s := NewScrubber("ab")
	if got := s.Scrub("cabbage"); got != "cabbage" {
		t.Fatalf("short secret must not be registered, got %q", got)
	}
}

func TestSanitizingHandlerRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	secret := "SDISTRIBUTORSECRETVALUE123"
	scrubber := NewScrubber(secret)

	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewTextHandler(&buf, nil), scrubber))
	logger.Info("account loaded", "signing_secret", secret, "detail", "signer "+secret+" ok")

	out := buf.String()
	if strings.Contains(out, secret) {
		t.Fatalf("log output leaked secret: %q", out)
	}
	if !strings.Contains(out, redactedValue) {
		t.Fatalf("expected redaction marker in %q", out)
	}
}
