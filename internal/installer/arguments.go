package installer

import (
	"os"
	"strings"

	"github.com/quasar/mcinstall/internal/argtmpl"
	"github.com/quasar/mcinstall/internal/core"
)

// buildArguments runs stage (m): accumulate the hierarchy's jvm/game
// argument templates, inject the logger argument if one was resolved, and
// expand every `${...}` token against the run's context.
// Unresolved tokens are left verbatim by argtmpl.Expand rather than
// failing the run, matching upstream's own tolerance for launcher-specific
// placeholders neither side recognizes.
func (r *run) buildArguments(h core.Hierarchy, files core.LibrariesFiles, binDir string, assetIndexID string, mapping *core.AssetsMapping, logger loggerConfig, jvm core.JVMDescriptor) (core.Game, error) {
	r.setState(StateArgs)

	mainClass, err := h.MainClass()
	if err != nil {
		return core.Game{}, err
	}

	acc := h.Arguments(r.opts.Env)
	jvmTmpls := acc.JVM
	if len(jvmTmpls) == 0 {
		jvmTmpls = core.LegacyJVMArgs
	}
	if logger.present {
		jvmTmpls = append(append([]string{}, jvmTmpls...), logger.argument)
	}

	vars := r.argumentVars(h, files, binDir, assetIndexID, mapping)
	if logger.present {
		vars["path"] = logger.file
	}

	game := core.Game{
		JVMFile:   jvm.File,
		MCDir:     r.opts.MainDir,
		MainClass: mainClass,
		JVMArgs:   argtmpl.ExpandAll(jvmTmpls, vars),
		GameArgs:  argtmpl.ExpandAll(acc.Game, vars),
	}
	return game, nil
}

// argumentVars builds the token substitution map used for ${...} expansion.
func (r *run) argumentVars(h core.Hierarchy, files core.LibrariesFiles, binDir, assetIndexID string, mapping *core.AssetsMapping) map[string]string {
	classpath := strings.Join(files.Classpath, classpathSeparator())

	// Legacy (pre-1.7) clients expect game_assets to point at the
	// virtual/<index> layout rather than the flat objects store.
	gameAssets := r.opts.AssetsDir
	if mapping != nil {
		gameAssets = mapping.VirtualDir
	}

	return map[string]string{
		"classpath_separator": classpathSeparator(),
		"classpath":           classpath,
		"natives_directory":   binDir,
		"launcher_name":       r.opts.LauncherName,
		"launcher_version":    r.opts.LauncherVersion,
		"version_name":        h.RootName(),
		"version_type":        string(h.VersionType()),
		"game_directory":      r.opts.MainDir,
		"library_directory":   r.opts.LibrariesDir,
		"assets_root":         r.opts.AssetsDir,
		"assets_index_name":   assetIndexID,
		"game_assets":         gameAssets,
	}
}

func classpathSeparator() string {
	return string(os.PathListSeparator)
}
