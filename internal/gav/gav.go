// Package gav parses and formats Maven coordinates of the form
// group:artifact:version[:classifier][@extension], the addressing scheme used
// throughout the installer for libraries, loaders and processors.
package gav

import (
	"fmt"
	"strings"
)

// allowedChars is the character whitelist for every GAV component. It
// deliberately excludes '/' and '\\' so a GAV can never be used to escape a
// directory when turned into a path.
const allowedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789._+:*@-"

const maxLength = 65535

// GAV is an immutable Maven coordinate: group:artifact:version[:classifier][@extension].
type GAV struct {
	group      string
	artifact   string
	version    string
	classifier string // optional
	extension  string // defaults to "jar"
}

// New builds a GAV from its parts, validating each one.
func New(group, artifact, version, classifier, extension string) (GAV, error) {
	if extension == "" {
		extension = "jar"
	}
	g := GAV{group: group, artifact: artifact, version: version, classifier: classifier, extension: extension}
	if err := g.validate(); err != nil {
		return GAV{}, err
	}
	return g, nil
}

// Parse reads the canonical string form "g:a:v[:c][@ext]".
func Parse(s string) (GAV, error) {
	if len(s) > maxLength {
		return GAV{}, fmt.Errorf("gav: coordinate exceeds %d characters", maxLength)
	}

	rest := s
	extension := "jar"
	if at := strings.LastIndexByte(rest, '@'); at >= 0 {
		extension = rest[at+1:]
		rest = rest[:at]
	}

	parts := strings.Split(rest, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return GAV{}, fmt.Errorf("gav: %q must have 3 or 4 colon-separated parts", s)
	}

	classifier := ""
	if len(parts) == 4 {
		classifier = parts[3]
	}

	return New(parts[0], parts[1], parts[2], classifier, extension)
}

func (g GAV) validate() error {
	required := map[string]string{"group": g.group, "artifact": g.artifact, "version": g.version}
	for name, v := range required {
		if v == "" {
			return fmt.Errorf("gav: %s must not be empty", name)
		}
	}
	fields := []string{g.group, g.artifact, g.version, g.classifier, g.extension}
	for _, v := range fields {
		if v == "" {
			continue
		}
		if strings.Contains(v, "..") {
			return fmt.Errorf("gav: %q contains a disallowed %q sequence", v, "..")
		}
		for _, r := range v {
			if strings.IndexRune(allowedChars, r) < 0 {
				return fmt.Errorf("gav: %q contains disallowed character %q", v, r)
			}
		}
	}
	if len(g.AsStr()) > maxLength {
		return fmt.Errorf("gav: coordinate exceeds %d characters", maxLength)
	}
	return nil
}

// Group returns the group ID.
func (g GAV) Group() string { return g.group }

// Artifact returns the artifact ID.
func (g GAV) Artifact() string { return g.artifact }

// Version returns the version string.
func (g GAV) Version() string { return g.version }

// Classifier returns the optional classifier, or "" if absent.
func (g GAV) Classifier() string { return g.classifier }

// Extension returns the file extension, defaulting to "jar".
func (g GAV) Extension() string { return g.extension }

// AsStr returns the canonical string form. The "@jar" suffix is always
// dropped since jar is the default extension.
func (g GAV) AsStr() string {
	var b strings.Builder
	b.WriteString(g.group)
	b.WriteByte(':')
	b.WriteString(g.artifact)
	b.WriteByte(':')
	b.WriteString(g.version)
	if g.classifier != "" {
		b.WriteByte(':')
		b.WriteString(g.classifier)
	}
	if g.extension != "" && g.extension != "jar" {
		b.WriteByte('@')
		b.WriteString(g.extension)
	}
	return b.String()
}

func (g GAV) String() string { return g.AsStr() }

// segments returns the path/URL segments shared by URLForm and FilePath:
// group with '.' replaced by the separator, artifact, version, then the
// filename "artifact-version[-classifier].extension".
func (g GAV) segments(sep string) []string {
	filename := g.artifact + "-" + g.version
	if g.classifier != "" {
		filename += "-" + g.classifier
	}
	filename += "." + g.extension

	segs := strings.Split(g.group, ".")
	segs = append(segs, g.artifact, g.version, filename)
	_ = sep
	return segs
}

// URLForm returns the forward-slash path used to address this coordinate on
// a Maven-style HTTP repository: g1/g2/.../a/v/a-v[-c].ext.
func (g GAV) URLForm() string {
	return strings.Join(g.segments("/"), "/")
}

// FilePath returns the same layout as URLForm but joined with the host OS's
// path separator, suitable for use under a libraries directory. Callers must
// still join this onto a trusted base directory; GAV's character whitelist
// already rejects '/', '\\' and "..", so the result cannot escape that base.
func (g GAV) FilePath(sep string) string {
	return strings.Join(g.segments(sep), sep)
}

// WildcardVersion returns a copy of the GAV with the version replaced by "*".
// This is the de-duplication key used when merging libraries across a
// version hierarchy: the first concrete version encountered wins.
func (g GAV) WildcardVersion() GAV {
	w := g
	w.version = "*"
	return w
}

// WithClassifier returns a copy with a different classifier.
func (g GAV) WithClassifier(classifier string) GAV {
	w := g
	w.classifier = classifier
	return w
}

// WithVersion returns a copy with a different version.
func (g GAV) WithVersion(version string) GAV {
	w := g
	w.version = version
	return w
}

// WithExtension returns a copy with a different extension.
func (g GAV) WithExtension(extension string) GAV {
	w := g
	w.extension = extension
	return w
}
