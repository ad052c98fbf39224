package consensus

// addU64 returns a + b or an error when the sum would wrap.
func addU64(a, b uint64, code ErrorCode) (uint64, error) {
	if b > ^uint64(0)-a {
		return 0, cerr(code, "u64 overflow")
	}
	return a + b, nil
}

// subU64 returns a - b or an error when b exceeds a.
func subU64(a, b uint64, code ErrorCode) (uint64, error) {
	if b > a {
		return 0, cerr(code, "u64 underflow")
	}
	return a - b, nil
}
