package forge

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/integrity"
)

// resolveToken resolves one templated value from a processor's args or
// data section. Each value is wholesale one of three forms: "[g:a:v]" an
// artifact reference resolved to its library-dir path, "'literal'" a
// quoted literal with the quotes stripped, or anything else a path inside
// the installer archive's extracted tree.
func resolveToken(raw, librariesDir, extractedDir string) (string, error) {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		g, err := gav.Parse(raw[1 : len(raw)-1])
		if err != nil {
			return "", core.Newf(core.KindInstallerDependencyNotFound, raw, err)
		}
		return filepath.Join(librariesDir, g.FilePath(string(os.PathSeparator))), nil
	}
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		return raw[1 : len(raw)-1], nil
	}
	return filepath.Join(extractedDir, filepath.FromSlash(strings.TrimPrefix(raw, "/"))), nil
}

// resolveArg resolves one element of a processor's "args" vector: a
// "{KEY}" token looks up data[KEY]'s side-appropriate value and resolves
// that (it may itself be a GAV/literal/path); anything else resolves
// directly.
func resolveArg(raw string, data map[string]sidedValue, side, librariesDir, extractedDir string) (string, error) {
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		key := raw[1 : len(raw)-1]
		sv, ok := data[key]
		if !ok {
			return "", core.Newf(core.KindInstallerDependencyNotFound, key, nil)
		}
		chosen := sv.Client
		if side == "server" {
			chosen = sv.Server
		}
		return resolveToken(chosen, librariesDir, extractedDir)
	}
	return resolveToken(raw, librariesDir, extractedDir)
}

// resolveOutputSha1 resolves an "outputs" map value: a "{KEY}" token looks
// up data[KEY]'s side-appropriate value verbatim (quotes stripped if
// present); anything else is the literal expected hex digest.
func resolveOutputSha1(raw string, data map[string]sidedValue, side string) string {
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		sv, ok := data[raw[1:len(raw)-1]]
		if !ok {
			return ""
		}
		v := sv.Client
		if side == "server" {
			v = sv.Server
		}
		return strings.Trim(v, "'")
	}
	return raw
}

func appliesToSide(sides []string, side string) bool {
	if len(sides) == 0 {
		return true
	}
	for _, s := range sides {
		if s == side {
			return true
		}
	}
	return false
}

func classpathSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// runProcessors executes p's processor graph in order, skipping any
// processor whose declared outputs already verify (so a retried install
// doesn't redo finished work) and failing on the first one that doesn't
// produce correct output.
func runProcessors(ctx context.Context, javaExe, librariesDir, extractedDir string, p installProfile, side string, emit func(events.Event)) error {
	for _, proc := range p.processors {
		if !appliesToSide(proc.Sides, side) {
			continue
		}
		if err := runOneProcessor(ctx, javaExe, librariesDir, extractedDir, p.data, proc, side, emit); err != nil {
			return err
		}
	}
	return nil
}

func runOneProcessor(ctx context.Context, javaExe, librariesDir, extractedDir string, data map[string]sidedValue, proc processorSpec, side string, emit func(events.Event)) error {
	jarGAV, err := gav.Parse(proc.Jar)
	if err != nil {
		return core.Newf(core.KindInstallerProcessorNotFound, proc.Jar, err)
	}
	jarPath := filepath.Join(librariesDir, jarGAV.FilePath(string(os.PathSeparator)))

	outputs := map[string]string{}
	for rawPath, rawSha1 := range proc.Outputs {
		path, err := resolveArg(rawPath, data, side, librariesDir, extractedDir)
		if err != nil {
			return err
		}
		outputs[path] = resolveOutputSha1(rawSha1, data, side)
	}

	if len(outputs) > 0 && allOutputsVerify(outputs) {
		return nil
	}

	cp := []string{jarPath}
	seen := map[string]bool{jarPath: true}
	for _, depRaw := range proc.Classpath {
		g, err := gav.Parse(depRaw)
		if err != nil {
			return core.Newf(core.KindInstallerDependencyNotFound, depRaw, err)
		}
		depPath := filepath.Join(librariesDir, g.FilePath(string(os.PathSeparator)))
		if _, err := os.Stat(depPath); err != nil {
			return core.Newf(core.KindInstallerDependencyNotFound, depRaw, err)
		}
		if !seen[depPath] {
			seen[depPath] = true
			cp = append(cp, depPath)
		}
	}

	mainClass, err := readJarMainClass(jarPath)
	if err != nil {
		return core.Newf(core.KindInstallerMainClassNotFound, proc.Jar, err)
	}

	var args []string
	for _, raw := range proc.Args {
		resolved, err := resolveArg(raw, data, side, librariesDir, extractedDir)
		if err != nil {
			return err
		}
		args = append(args, resolved)
	}

	emit(RunInstallerProcessor{Name: jarGAV.String(), Task: describeTask(jarGAV, args)})

	cmdArgs := append([]string{"-cp", strings.Join(cp, classpathSeparator()), mainClass}, args...)
	cmd := exec.CommandContext(ctx, javaExe, cmdArgs...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return core.Newf(core.KindInstallerProcessorFailed, proc.Jar, err).WithDetail(string(out))
	}

	for path, expSha1 := range outputs {
		ok, err := integrity.Verify(path, integrity.Expectation{Sha1: expSha1})
		if err != nil {
			return err
		}
		if !ok {
			return core.Newf(core.KindInstallerProcessorCorrupted, path, nil).WithDetail(expSha1)
		}
	}
	return nil
}

func allOutputsVerify(outputs map[string]string) bool {
	for path, sha1 := range outputs {
		ok, err := integrity.Verify(path, integrity.Expectation{Sha1: sha1})
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// processorDescription is one entry of the known-artifact-name table;
// keyword, when set, must appear in one of the processor's resolved args
// for the entry to match, distinguishing installertools' several tasks.
type processorDescription struct {
	group    string
	artifact string
	keyword  string
	text     string
}

var processorDescriptions = []processorDescription{
	{artifact: "installertools", keyword: "MCP_DATA", text: "Generating MCP data"},
	{artifact: "installertools", keyword: "DOWNLOAD_MOJMAPS", text: "Downloading Mojang mappings"},
	{artifact: "installertools", keyword: "MERGE_MAPPING", text: "Merging MCP and Mojang mappings"},
	{artifact: "installertools", keyword: "PROCESS_MINECRAFT_JAR", text: "Process client (NeoForge)"},
	{artifact: "jarsplitter", text: "Splitting client with mappings"},
	{artifact: "ForgeAutoRenamingTool", text: "Renaming client with mappings (Forge)"},
	{artifact: "AutoRenamingTool", group: "net.neoforged", text: "Renaming client with mappings (NeoForge)"},
	{artifact: "vignette", text: "Renaming client with mappings (Vignette)"},
	{artifact: "binarypatcher", text: "Patching client"},
	{artifact: "SpecialSource", text: "Renaming client with mappings (SpecialSource)"},
}

// describeTask gives a human-readable label for a processor invocation,
// falling back to the processor jar's own GAV string when it isn't one of
// the well-known installer tools. Purely presentational: a handler may
// surface it, nothing in the install depends on the match succeeding.
func describeTask(jar gav.GAV, args []string) string {
	for _, d := range processorDescriptions {
		if d.artifact != jar.Artifact() {
			continue
		}
		if d.group != "" && d.group != jar.Group() {
			continue
		}
		if d.keyword != "" && !anyContains(args, d.keyword) {
			continue
		}
		return d.text
	}
	return jar.String()
}

func anyContains(args []string, keyword string) bool {
	for _, a := range args {
		if strings.Contains(a, keyword) {
			return true
		}
	}
	return false
}
