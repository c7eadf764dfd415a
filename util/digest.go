package util

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
)

// CreateMd5Hash opens a new md5 hash to stream the transferred bytes into.
func CreateMd5Hash() hash.Hash {
	return md5.New()
}

// GetMd5HashString renders the accumulated hash as a hex string.
func GetMd5HashString(h hash.Hash) string {
	hashInBytes := h.Sum(nil)
	return hex.EncodeToString(hashInBytes)
}
