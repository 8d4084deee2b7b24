// Package integrity checks a file on disk against an expected size and/or
// SHA-1 digest, the verification contract shared by every downloadable
// artifact (libraries, client jar, assets, JVM archives).
package integrity

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the digest Mojang's metadata itself uses
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Expectation describes what a file on disk must satisfy. A zero value for
// Size or an empty Sha1 means that check is skipped; both zero is legal and
// always verifies (used when Mojang metadata omits integrity info entirely).
type Expectation struct {
	Size int64
	Sha1 string
}

// Verify reports whether path already satisfies want. A missing file is not
// an error: it is reported via ok=false so callers can decide to download.
func Verify(path string, want Expectation) (ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("integrity: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("integrity: stat %s: %w", path, err)
	}
	if want.Size > 0 && info.Size() != want.Size {
		return false, nil
	}
	if want.Sha1 == "" {
		return true, nil
	}

	h := sha1.New() //nolint:gosec
	if _, err := io.Copy(h, f); err != nil {
		return false, fmt.Errorf("integrity: hash %s: %w", path, err)
	}
	got := hex.EncodeToString(h.Sum(nil))
	return got == want.Sha1, nil
}

// Sha1Of computes the hex SHA-1 digest of r.
func Sha1Of(r io.Reader) (string, error) {
	h := sha1.New() //nolint:gosec
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("integrity: hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sha1OfFile computes the hex SHA-1 digest of the file at path.
func Sha1OfFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("integrity: open %s: %w", path, err)
	}
	defer f.Close()
	return Sha1Of(f)
}
