// Package cryptox derives password verifiers for the operator credential store.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated operator salt.
const SaltSize = 32

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so the key itself is never stored.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// PasswordVerifier is MakeVerifier(DeriveKey(password, salt)).
func PasswordVerifier(password []byte, salt []byte) []byte {
	return MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword reports whether password matches the stored verifier.
// The comparison runs in constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	return subtle.ConstantTimeCompare(PasswordVerifier(password, salt), verifier) == 1
}
