// Package otp generates and checks numeric one-time codes delivered out of
// band (email), as used by the admin login challenge.
//
// Codes are drawn uniformly from crypto/rand; callers store only a hash of the
// code and compare hashes, never plaintext.
package otp
