package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var keySegments = regexp.MustCompile(`[^a-z0-9]+`)

// Key segments whose values are hidden entirely.
var credentialWords = map[string]bool{
	"secret": true, "password": true, "token": true, "key": true,
	"auth": true, "credential": true, "authorization": true,
}

// Key segments whose values are ACH account identifiers. Only the last four
// characters are kept so operators can still correlate entries.
var accountWords = map[string]bool{
	"account": true, "dfi": true,
}

type keyClass int

const (
	plainKey keyClass = iota
	credentialKey
	accountKey
)

func classify(key string) keyClass {
	class := plainKey
	for _, seg := range keySegments.Split(strings.ToLower(key), -1) {
		if credentialWords[seg] {
			return credentialKey
		}
		if accountWords[seg] {
			class = accountKey
		}
	}
	return class
}

// redactPairs returns a copy of the key-value pairs with sensitive values
// replaced. A trailing key without a value is kept as is.
func redactPairs(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		switch classify(key) {
		case credentialKey:
			out[i+1] = redacted
		case accountKey:
			out[i+1] = lastFour(out[i+1])
		}
	}
	return out
}

func lastFour(v any) any {
	s, ok := v.(string)
	if !ok {
		return redacted
	}
	s = strings.TrimSpace(s)
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
