package httpsource

import "io"

// countBody drains r and reports how many bytes it contained, without
// holding the whole body in memory at once.
func countBody(r io.Reader) (int, error) {
	n, err := io.Copy(io.Discard, r)
	return int(n), err
}
