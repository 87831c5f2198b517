package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives the cache key for a request. The method is upper-cased so
// "get" and "GET" share an entry.
func Key(method, path string) string {
	sum := sha256.Sum256([]byte(strings.ToUpper(method) + " " + path))
	return hex.EncodeToString(sum[:])
}
