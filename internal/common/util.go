package common

// WipeByteArray overwrites the slice contents with zeroes. Used to clear
// passwords and other short-lived secrets after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
