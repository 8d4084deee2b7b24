package forge

import (
	"archive/zip"
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quasar/mcinstall/internal/core"
)

// readZipEntry returns the contents of name inside the archive at path, or
// ok=false if no such entry exists.
func readZipEntry(path, name string) (data []byte, ok bool, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, core.Internal(path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, core.Internal(path+"!"+name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, false, core.Internal(path+"!"+name, err)
		}
		return data, true, nil
	}
	return nil, false, nil
}

// extractZipTo extracts every entry of the archive at path into destDir,
// preserving its internal directory structure. Used to materialize an
// installer's embedded maven/ and data/ directories for processors that
// reference a path inside the archive rather than a GAV or literal.
func extractZipTo(path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return core.Internal(path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		dest := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(filepath.Separator)) {
			return core.Newf(core.KindInstallerFileNotFound, f.Name, nil).WithDetail("entry escapes destination directory")
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return core.Internal(dest, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return core.Internal(dest, err)
		}
		if err := extractOne(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return core.Internal(dest, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return core.Internal(dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return core.Internal(dest, err)
	}
	return nil
}

// readJarMainClass reads the Main-Class attribute out of a jar's
// META-INF/MANIFEST.MF.
func readJarMainClass(jarPath string) (string, error) {
	data, ok, err := readZipEntry(jarPath, "META-INF/MANIFEST.MF")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", core.Newf(core.KindInstallerMainClassNotFound, jarPath, nil)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if name, value, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(name) == "Main-Class" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", core.Newf(core.KindInstallerMainClassNotFound, jarPath, nil)
}
