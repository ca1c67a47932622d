package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
)

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestOf streams the JSON encoding of v into a SHA-256 hasher.
func digestOf(v any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(v)
	return hex.EncodeToString(h.Sum(nil))
}

// shardedPath maps key to <dir>/<d[:2]>/<d[2:]>.json, where d is the key's
// digest.
func shardedPath(dir, key string) string {
	d := Digest([]byte(key))
	return filepath.Join(dir, d[:2], d[2:]+".json")
}
