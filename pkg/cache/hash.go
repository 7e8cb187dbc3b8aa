package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 content hash of data as a 64-character hex
// string. The pipeline hashes the canonical graph document with it, so
// two loads of the same nodes and edges share every cache key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key: the parts are serialized and
// hashed, and the prefix keeps report and render keys apart even for
// the same graph.
func hashKey(prefix string, parts ...any) string {
	serialized, _ := json.Marshal(parts)
	return prefix + ":" + Hash(serialized)
}
