package installer

import (
	"strings"
	"testing"

	"github.com/quasar/mcinstall/internal/core"
)

func TestBuildArgumentsModernAccumulatesAndExpands(t *testing.T) {
	r := newTestRun(t, Options{})
	h := core.Hierarchy{
		Names: []string{"1.20"},
		Metas: []core.VersionMeta{{
			ID:        "1.20",
			MainClass: "net.minecraft.client.main.Main",
			Arguments: &core.Arguments{
				JVM:  []core.ArgEntry{{Literal: "-Xmx2G"}, {Literal: "-cp"}, {Literal: "${classpath}"}},
				Game: []core.ArgEntry{{Literal: "--username"}, {Literal: "${auth_player_name}"}},
			},
		}},
	}
	files := core.LibrariesFiles{Classpath: []string{"/mc/versions/1.20/1.20.jar", "/mc/libraries/a.jar"}}

	game, err := r.buildArguments(h, files, "/mc/bin/uuid", "6", nil, loggerConfig{}, core.JVMDescriptor{File: "/usr/bin/java"})
	if err != nil {
		t.Fatalf("buildArguments: %v", err)
	}
	if game.MainClass != "net.minecraft.client.main.Main" {
		t.Errorf("got main class %q", game.MainClass)
	}
	joined := strings.Join(game.JVMArgs, " ")
	if !strings.Contains(joined, "/mc/versions/1.20/1.20.jar") {
		t.Errorf("classpath not expanded into jvm args: %v", game.JVMArgs)
	}
	// auth_player_name was never supplied: the token must survive verbatim.
	if game.GameArgs[1] != "${auth_player_name}" {
		t.Errorf("got %q, want unresolved token left verbatim", game.GameArgs[1])
	}
}

func TestBuildArgumentsLegacyFallsBackToFixedJvmArgs(t *testing.T) {
	r := newTestRun(t, Options{})
	h := core.Hierarchy{
		Names: []string{"1.6"},
		Metas: []core.VersionMeta{{
			ID:                 "1.6",
			MainClass:          "net.minecraft.client.Minecraft",
			MinecraftArguments: "--username ${auth_player_name} --version ${version_name}",
		}},
	}

	game, err := r.buildArguments(h, core.LibrariesFiles{}, "", "", nil, loggerConfig{}, core.JVMDescriptor{})
	if err != nil {
		t.Fatalf("buildArguments: %v", err)
	}
	if len(game.JVMArgs) != len(core.LegacyJVMArgs) {
		t.Errorf("got %d jvm args, want the fixed legacy set", len(game.JVMArgs))
	}
	if game.GameArgs[len(game.GameArgs)-1] != "1.6" {
		t.Errorf("got %v", game.GameArgs)
	}
}

func TestBuildArgumentsMissingMainClassFails(t *testing.T) {
	r := newTestRun(t, Options{})
	h := core.Hierarchy{Names: []string{"x"}, Metas: []core.VersionMeta{{ID: "x"}}}

	_, err := r.buildArguments(h, core.LibrariesFiles{}, "", "", nil, loggerConfig{}, core.JVMDescriptor{})
	cerr, ok := err.(*core.Error)
	if !ok || cerr.Kind != core.KindMainClassNotFound {
		t.Fatalf("got %v, want KindMainClassNotFound", err)
	}
}
