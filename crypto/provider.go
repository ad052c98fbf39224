package crypto

// Provider is the narrow crypto interface used by consensus code.
// The engine never opens a hash backend itself; callers pass one in.
type Provider interface {
	DoubleSHA256(input []byte) [32]byte
}
