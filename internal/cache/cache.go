package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching model service responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PromptKey generates a cache key from a prompt. Identical prompts (same
// window text, same template) hit the same entry, so re-running an
// interrupted pass does not re-bill already answered windows.
func PromptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "claimsift:v1:" + hex.EncodeToString(hash[:])
}
