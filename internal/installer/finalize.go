package installer

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mholt/archiver/v3"

	"github.com/quasar/mcinstall/internal/core"
)

// nativeExtensions gates which archive entries of a natives JAR get
// extracted; everything else (class files, manifests, license text bundled
// alongside the shared libraries) is left in the JAR.
var nativeExtensions = map[string]bool{".so": true, ".dll": true, ".dylib": true}

// versionedSoPattern matches a Linux shared object with a trailing
// numeric version suffix, e.g. "libopenal.so.1.19.1" -> base "libopenal.so".
var versionedSoPattern = regexp.MustCompile(`^(.+\.so)(\.\d+){1,3}$`)

// binUUIDNamespace roots the UUIDv5 derivation for a run's natives
// directory name; any fixed namespace works since only determinism across
// repeated installs of the same library set matters.
var binUUIDNamespace = uuid.MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")

// finalizeLibraries runs stage (j): derive this run's bin_uuid from the
// canonicalized set of native library paths, then extract each natives JAR
// into <bin_dir>/<bin_uuid>, trimming versioned .so files down to their
// unversioned name via a symlink (copy fallback where symlinks aren't
// available, e.g. Windows without developer mode).
func (r *run) finalizeLibraries(files core.LibrariesFiles) (string, error) {
	r.setState(StateFinalizeLibs)

	if len(files.Natives) == 0 {
		return "", nil
	}

	canon := make([]string, len(files.Natives))
	for i, p := range files.Natives {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", core.Internal(p, err)
		}
		canon[i] = filepath.ToSlash(abs)
	}
	sort.Strings(canon)
	binUUID := uuid.NewSHA1(binUUIDNamespace, []byte(strings.Join(canon, "\n"))).String()

	binDir := filepath.Join(r.opts.BinDir, binUUID)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return "", core.Internal(binDir, err)
	}

	for _, jarPath := range files.Natives {
		if err := extractNatives(jarPath, binDir); err != nil {
			return "", core.Internal(jarPath, err)
		}
	}

	return binDir, nil
}

// extractNatives unpacks jarPath's native libraries into binDir. A bare
// shared-object file (not wrapped in a zip/jar, as some loader-provided
// natives are) has no archive to walk; it's symlinked directly into binDir
// instead, under the same versioned-.so trimming rule the archive branch
// applies.
func extractNatives(jarPath, binDir string) error {
	ext := strings.ToLower(filepath.Ext(jarPath))
	if ext != ".zip" && ext != ".jar" {
		return linkNativeFile(jarPath, binDir)
	}

	z := archiver.NewZip()
	err := z.Walk(jarPath, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		name := f.Name()
		if strings.HasPrefix(name, "META-INF/") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !nativeExtensions[ext] && !versionedSoPattern.MatchString(name) {
			return nil
		}

		base := filepath.Base(name)
		dest := filepath.Join(binDir, base)
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		_, copyErr := io.Copy(out, f)
		closeErr := out.Close()
		if copyErr != nil {
			return copyErr
		}
		if closeErr != nil {
			return closeErr
		}

		if m := versionedSoPattern.FindStringSubmatch(base); m != nil {
			linkAt(filepath.Join(binDir, m[1]), dest)
		}
		return nil
	})
	return err
}

// linkNativeFile symlinks a bare natives file (e.g. a loader-provided
// liblwjgl.so placed directly on disk, never packaged in a jar) into
// binDir under its own base name, trimming a versioned .so suffix down to
// an additional unversioned symlink the same way extractNatives does for
// archive entries.
func linkNativeFile(srcPath, binDir string) error {
	abs, err := filepath.Abs(srcPath)
	if err != nil {
		return err
	}
	base := filepath.Base(abs)
	dest := filepath.Join(binDir, base)
	if err := linkAt(dest, abs); err != nil {
		return err
	}
	if m := versionedSoPattern.FindStringSubmatch(base); m != nil {
		return linkAt(filepath.Join(binDir, m[1]), dest)
	}
	return nil
}

// linkAt creates link pointing at target, preferring a symlink and falling
// back to a byte copy when symlink creation isn't possible. An
// already-present link/file at the destination is treated as success,
// matching the idempotent-reinstall invariant.
func linkAt(link, target string) error {
	if err := os.Symlink(target, link); err != nil {
		if os.IsExist(err) {
			return nil
		}
		return copyFile(target, link)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// finalizeAssets runs stage (k): hard-link every mapped asset from the
// content-addressed object store into the virtual assets directory, and
// when the index also requests map_to_resources, mirror it into the
// legacy resources/ layout by size-only copy.
func (r *run) finalizeAssets(mapping *core.AssetsMapping) error {
	r.setState(StateFinalizeAssets)

	if mapping == nil {
		return nil
	}

	objectsDir := filepath.Join(r.opts.AssetsDir, "objects")
	resourcesDir := filepath.Join(r.opts.MainDir, "resources")

	for _, e := range mapping.Entries {
		objPath := filepath.Join(objectsDir, filepath.FromSlash(e.ObjectFile))
		virtualPath := filepath.Join(mapping.VirtualDir, filepath.FromSlash(e.RelFile))

		if err := os.MkdirAll(filepath.Dir(virtualPath), 0o755); err != nil {
			return core.Internal(virtualPath, err)
		}
		if err := os.Link(objPath, virtualPath); err != nil && !os.IsExist(err) {
			if copyErr := copyFile(objPath, virtualPath); copyErr != nil {
				return core.Internal(virtualPath, copyErr)
			}
		}

		if !mapping.MirrorToResources {
			continue
		}
		resourcePath := filepath.Join(resourcesDir, filepath.FromSlash(e.RelFile))
		if info, err := os.Stat(resourcePath); err == nil && info.Size() == e.Size {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(resourcePath), 0o755); err != nil {
			return core.Internal(resourcePath, err)
		}
		if err := copyFile(objPath, resourcePath); err != nil {
			return core.Internal(resourcePath, err)
		}
	}
	return nil
}

// finalizeJVM runs stage (l): mark every Mojang-provided executable file
// with its execute bits (Unix only; Windows carries no such concept) and
// materialize the runtime's internal symlinks.
func (r *run) finalizeJVM(desc core.JVMDescriptor) error {
	r.setState(StateFinalizeJvm)

	if runtime.GOOS != "windows" {
		for _, exe := range desc.ExecutableFiles {
			info, err := os.Stat(exe)
			if err != nil {
				return core.Internal(exe, err)
			}
			mode := info.Mode()
			newMode := mode | ((mode & 0o444) >> 2)
			if newMode != mode {
				if err := os.Chmod(exe, newMode); err != nil {
					return core.Internal(exe, err)
				}
			}
		}
	}

	for _, l := range desc.Links {
		if err := os.MkdirAll(filepath.Dir(l.Link), 0o755); err != nil {
			return core.Internal(l.Link, err)
		}
		if err := linkAt(l.Link, l.Target); err != nil {
			return core.Internal(l.Link, err)
		}
	}
	return nil
}
