package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// Token generates opaque bearer values from crypto/rand, hex encoded.
type Token struct {
	size int
}

// NewToken returns a generator producing size random bytes per token.
func NewToken(size int) *Token {
	if size <= 0 {
		size = 32
	}
	return &Token{size: size}
}

// Generate returns a new token of 2*size hex characters.
//
// crypto/rand.Read never returns an error on supported platforms; a failure
// there is unrecoverable.
func (t *Token) Generate() string {
	b := make([]byte, t.size)
	if _, err := rand.Read(b); err != nil {
		panic("uid: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
