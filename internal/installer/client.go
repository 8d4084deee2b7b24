package installer

import (
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/integrity"
)

// clientJarPath returns <versions_dir>/<root>/<root>.jar.
func (r *run) clientJarPath(rootName string) string {
	return filepath.Join(r.opts.VersionsDir, rootName, rootName+".jar")
}

// resolveClient checks the root version's client JAR against the hierarchy's
// downloads.client entry, enqueuing it if missing/invalid. If nothing in
// the hierarchy names one, a JAR already on disk is used as is and a
// missing one fails with ClientNotFound.
func (r *run) resolveClient(h core.Hierarchy) (string, error) {
	r.setState(StateClient)

	dest := r.clientJarPath(h.RootName())
	artifact := h.ClientDownload()

	want := integrity.Expectation{Size: 0}
	if artifact != nil {
		want.Size = artifact.Size
		if r.opts.StrictLibrariesCheck {
			want.Sha1 = artifact.SHA1
		}
	}

	ok, err := integrity.Verify(dest, want)
	if err != nil {
		return "", core.Internal(dest, err)
	}
	if ok {
		return dest, nil
	}

	if artifact == nil {
		if _, statErr := os.Stat(dest); statErr != nil {
			return "", core.Newf(core.KindClientNotFound, h.RootName(), nil)
		}
		return dest, nil
	}

	r.enqueue(download.Entry{
		URL:  artifact.URL,
		Dest: dest,
		Size: artifact.Size,
		SHA1: want.Sha1,
		Mode: download.Cache,
	})
	return dest, nil
}
