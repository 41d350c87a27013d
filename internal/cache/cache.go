// Package cache stores completed translations so repeated text skips the
// model entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"viola/internal/domain"
)

// TranslationCache is the interface for translation result caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns false if absent or expired.
	Get(key string) (string, bool)

	// Set stores a translation.
	Set(key string, value string) error
}

// Key derives a stable cache key from the language pair and source text.
func Key(source, target domain.LanguageCode, text string) string {
	sum := sha256.Sum256([]byte(string(source) + "|" + string(target) + "|" + text))
	return hex.EncodeToString(sum[:])
}
