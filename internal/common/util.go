// Package common contains small helpers shared across client components.
package common

// WipeByteArray overwrites the buffer with zeros. Used for passwords read
// from the terminal so they do not linger in memory longer than needed.
// Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
