package domain

// Zero overwrites a byte slice in place so key material and plaintext do not
// linger in memory after use. Callers still hold the (now zeroed) slice.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
