// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// SessionDigester turns raw session material (client token or IP/UA
// fingerprint) into a stable, non-reversible identifier.
//
// The digest is keyed, so raw IP addresses cannot be recovered by hashing
// candidate inputs without SESSION_SECRET.
type SessionDigester struct {
	key []byte
}

// NewSessionDigester creates a digester with the given secret.
// BLAKE2b accepts keys of 1 to 64 bytes; longer secrets are pre-hashed.
func NewSessionDigester(secret string) (*SessionDigester, error) {
	if secret == "" {
		return nil, errors.New("sec: session secret must not be empty")
	}

	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}

	return &SessionDigester{key: key}, nil
}

// Digest returns the hex-encoded 256-bit keyed hash of the parts.
// Parts are NUL-separated so ("ab","c") and ("a","bc") never collide.
func (digester *SessionDigester) Digest(parts ...string) string {
	hash, err := blake2b.New256(digester.key)
	if err != nil {
		// Key length is validated in the constructor.
		panic(err)
	}

	for i, part := range parts {
		if i > 0 {
			hash.Write([]byte{0})
		}
		hash.Write([]byte(part))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
