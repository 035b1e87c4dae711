package common

// WipeByteArray zeroes the buffer in place. Used for passwords read from
// the terminal so they do not linger in memory longer than needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut. Used by list views to keep table rows on one line.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
