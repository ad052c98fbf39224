package crypto

import "crypto/sha256"

// StdProvider backs Provider with the standard library SHA-256.
type StdProvider struct{}

func (StdProvider) DoubleSHA256(input []byte) [32]byte {
	first := sha256.Sum256(input)
	return sha256.Sum256(first[:])
}
