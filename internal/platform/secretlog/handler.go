package secretlog

import (
	"context"
	"log/slog"
	"strings"
)

var sensitiveKeyParts = []string{"secret", "seed", "mnemonic", "passphrase", "token", "key"}

// SanitizingHandler wraps a slog.Handler so that attributes under sensitive
// keys are redacted and every string value is scrubbed of registered secret
// values before the record reaches the sink.
type SanitizingHandler struct {
	next     slog.Handler
	scrubber *Scrubber
}

func WrapHandler(next slog.Handler, scrubber *Scrubber) slog.Handler {
	if next == nil {
		return nil
	}
	return &SanitizingHandler{next: next, scrubber: scrubber}
}

func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SanitizingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, h.scrubber.Scrub(rec.Message), rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.sanitizeAttr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		sanitized = append(sanitized, h.sanitizeAttr(attr))
	}
	return &SanitizingHandler{next: h.next.WithAttrs(sanitized), scrubber: h.scrubber}
}

func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{next: h.next.WithGroup(name), scrubber: h.scrubber}
}

func (h *SanitizingHandler) sanitizeAttr(attr slog.Attr) slog.Attr {
	key := strings.TrimSpace(attr.Key)
	if isSensitiveKey(strings.ToLower(key)) {
		return slog.String(key, redactedValue)
	}
	if attr.Value.Kind() == slog.KindString {
		return slog.String(key, h.scrubber.Scrub(attr.Value.String()))
	}
	return attr
}

func isSensitiveKey(key string) bool {
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}
