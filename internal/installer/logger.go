package installer

import (
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/integrity"
)

// loggerConfig is the resolved logger stage result: the destination file
// path on disk and the argument template to splice it into, or a zero
// value when no hierarchy level declares a logging.client block.
type loggerConfig struct {
	present  bool
	file     string
	argument string
}

// resolveLogger runs stage (f): locate the first logging.client block in
// hierarchy order, compute its destination, and enqueue it if missing
//. A hierarchy with no logging block at all is not an
// error — vanilla's legacy versions predate this feature entirely.
func (r *run) resolveLogger(h core.Hierarchy) (loggerConfig, error) {
	r.setState(StateLogger)

	lc := h.LoggingClient()
	if lc == nil {
		return loggerConfig{}, nil
	}

	dest := filepath.Join(r.opts.AssetsDir, "log_configs", lc.File.Path)
	if lc.File.Path == "" {
		dest = filepath.Join(r.opts.AssetsDir, "log_configs", filepath.Base(lc.File.URL))
	}

	want := integrity.Expectation{Size: lc.File.Size}
	if r.opts.StrictLibrariesCheck {
		want.Sha1 = lc.File.SHA1
	}
	ok, err := integrity.Verify(dest, want)
	if err != nil {
		return loggerConfig{}, core.Internal(dest, err)
	}
	if !ok {
		r.enqueue(download.Entry{
			URL:  lc.File.URL,
			Dest: dest,
			Size: lc.File.Size,
			SHA1: want.Sha1,
			Mode: download.Cache,
		})
	}

	return loggerConfig{present: true, file: dest, argument: lc.Argument}, nil
}
