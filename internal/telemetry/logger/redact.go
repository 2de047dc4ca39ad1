package logger

import (
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/yndnr/pak-go/pkg/pak"
)

// keyPrefixes holds the API key prefixes whose values are masked.
var keyPrefixes = struct {
	sync.RWMutex
	set map[string]struct{}
}{set: make(map[string]struct{})}

// RegisterKeyPrefix marks prefix as an API key prefix. Logged strings that
// parse as a key with this prefix are masked.
func RegisterKeyPrefix(prefix string) {
	if prefix == "" {
		return
	}
	keyPrefixes.Lock()
	keyPrefixes.set[prefix] = struct{}{}
	keyPrefixes.Unlock()
}

func registeredPrefix(prefix string) bool {
	keyPrefixes.RLock()
	defer keyPrefixes.RUnlock()
	_, ok := keyPrefixes.set[prefix]
	return ok
}

// Attribute names whose values are never logged.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"long_token",
	"credential",
	"authorization",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks key values first, then fully redacts attributes
// whose name marks them as sensitive.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		value := a.Value.String()
		if masked := RedactString(value); masked != value {
			return slog.String(a.Key, masked)
		}
		if value != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindAny:
		// Error text may quote the key that failed.
		if err, ok := a.Value.Any().(error); ok && err != nil {
			text := err.Error()
			if masked := RedactString(text); masked != text {
				return slog.String(a.Key, masked)
			}
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			redacted[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}
	return a
}

// maskKey returns the masked form of value when it is a key with a
// registered prefix.
func maskKey(value string) (string, bool) {
	if !strings.Contains(value, pak.Separator) {
		return "", false
	}
	key, err := pak.ParseKey(value)
	if err != nil || !registeredPrefix(key.Prefix()) {
		return "", false
	}
	return key.String(), true
}

// RedactString masks every key with a registered prefix found in value,
// whether value is the key itself or a message quoting it. Keys are split
// out of the text at whitespace, quotes and common punctuation.
func RedactString(value string) string {
	if !strings.Contains(value, pak.Separator) {
		return value
	}
	var b strings.Builder
	changed := false
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := value[start:end]
		if masked, ok := maskKey(word); ok {
			b.WriteString(masked)
			changed = true
		} else {
			b.WriteString(word)
		}
		start = -1
	}
	for i, r := range value {
		if isWordBreak(r) {
			flush(i)
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(value))
	if !changed {
		return value
	}
	return b.String()
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("\"'`,;:=()[]{}<>", r)
}

// IsSensitiveKey reports whether an attribute name suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
