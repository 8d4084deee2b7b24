package download

import (
	"crypto/sha1" //nolint:gosec // matches the SHA-1 digests Mojang's own metadata uses
	"encoding/hex"
	"io"
)

// streamTo copies r into w while hashing it, invoking onChunk with the
// number of bytes written on every read so batch progress can be reported
// at sub-entry granularity.
func streamTo(w io.Writer, r io.Reader, onChunk func(int64)) (written int64, sha1Hex string, err error) {
	h := sha1.New() //nolint:gosec
	buf := make([]byte, 32*1024)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return written, "", werr
			}
			h.Write(buf[:n])
			written += int64(n)
			if onChunk != nil {
				onChunk(int64(n))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, "", readErr
		}
	}
	return written, hex.EncodeToString(h.Sum(nil)), nil
}
