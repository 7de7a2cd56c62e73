package service

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 4096
	hashKeyLen     = 32
)

// HashPassword derives a deterministic salted hash of password using the
// process-wide salt. Determinism matters: the user store matches on
// (email, hash) in a single lookup, so equal inputs must produce equal
// hashes.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}
