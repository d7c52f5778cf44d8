// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is for password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored hash. Implementations
// (bcrypt for passwords, HMAC-SHA256 for tokens and one-time codes) live in this package behind a small interface.
package hash
