package hash

// Hash produces and verifies one-way digests of secrets.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}
