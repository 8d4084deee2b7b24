package mojang

import (
	"testing"

	"github.com/quasar/mcinstall/internal/account"
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
)

// TestApplyAuthAndFixesSubstitutesTokens drives applyAuthAndFixes directly
// against a Game carrying unresolved auth/resolution tokens, the way Base
// leaves them when it doesn't recognize a placeholder.
func TestApplyAuthAndFixesSubstitutesTokens(t *testing.T) {
	game := core.Game{
		GameArgs: []string{"--username", "${auth_player_name}", "--uuid", "${auth_uuid}", "--width", "${resolution_width}", "--height", "${resolution_height}"},
		JVMArgs:  []string{"-Dfoo=${launcher_name}"},
	}
	opts := Options{
		Resolution: &Resolution{Width: 1280, Height: 720},
	}
	acc := &account.Account{Name: "Alex", ID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"}

	applyAuthAndFixes(&game, opts, "1.21", acc, nil)

	want := []string{"--username", "Alex", "--uuid", "aaaaaaaabbbbccccddddeeeeeeeeeeee", "--width", "1280", "--height", "720"}
	if len(game.GameArgs) != len(want) {
		t.Fatalf("GameArgs = %v, want %v", game.GameArgs, want)
	}
	for i := range want {
		if game.GameArgs[i] != want[i] {
			t.Errorf("GameArgs[%d] = %q, want %q", i, game.GameArgs[i], want[i])
		}
	}
}

// TestApplyAuthAndFixesLegacyQuickPlayFallback exercises the
// multiplayer-quick-play legacy fallback: no token present, LegacyFixes on.
func TestApplyAuthAndFixesLegacyQuickPlayFallback(t *testing.T) {
	game := core.Game{GameArgs: []string{"--username", "${auth_player_name}"}}
	opts := Options{
		QuickPlay:   QuickPlay{Mode: QuickPlayMultiplayer, Host: "mc.example.com", Port: "25565"},
		LegacyFixes: true,
	}
	acc := &account.Account{Name: "Alex"}

	applyAuthAndFixes(&game, opts, "1.6.4", acc, nil)

	found := false
	for i, a := range game.GameArgs {
		if a == "--server" && i+1 < len(game.GameArgs) && game.GameArgs[i+1] == "mc.example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected --server mc.example.com appended, got %v", game.GameArgs)
	}
}

// TestApplyAuthAndFixesQuickPlayWarnsWithoutLegacyFixes checks that an
// unsupported quick-play request surfaces a warning event rather than
// silently being dropped when LegacyFixes is off.
func TestApplyAuthAndFixesQuickPlayWarnsWithoutLegacyFixes(t *testing.T) {
	game := core.Game{}
	opts := Options{QuickPlay: QuickPlay{Mode: QuickPlayMultiplayer, Host: "mc.example.com", Port: "25565"}}
	acc := &account.Account{Name: "Alex"}

	var warned bool
	caller := events.HandlerFunc(func(e events.Event) {
		if _, ok := e.(WarnUnsupportedQuickPlay); ok {
			warned = true
		}
	})
	applyAuthAndFixes(&game, opts, "1.6.4", acc, caller)

	if !warned {
		t.Error("expected WarnUnsupportedQuickPlay to be emitted")
	}
	for _, a := range game.GameArgs {
		if a == "--server" {
			t.Error("did not expect --server to be injected without LegacyFixes")
		}
	}
}

// TestApplyAuthAndFixesLegacyProxyAndMergeSort exercises the version-keyed
// legacy JVM argument fixes.
func TestApplyAuthAndFixesLegacyProxyAndMergeSort(t *testing.T) {
	game := core.Game{}
	opts := Options{LegacyFixes: true}
	acc := &account.Account{Name: "Alex"}

	applyAuthAndFixes(&game, opts, "b1.7.3", acc, nil)

	hasProxy, hasMergeSort := false, false
	for _, a := range game.JVMArgs {
		if a == "-Dhttp.proxyPort=11705" {
			hasProxy = true
		}
		if a == "-Djava.util.Arrays.useLegacyMergeSort=true" {
			hasMergeSort = true
		}
	}
	if !hasProxy {
		t.Errorf("expected the betacraft proxy port fix, got %v", game.JVMArgs)
	}
	if !hasMergeSort {
		t.Errorf("expected the legacy merge sort fix, got %v", game.JVMArgs)
	}
}

func TestApplyAuthAndFixesDisableFlags(t *testing.T) {
	game := core.Game{}
	opts := Options{DisableMultiplayer: true, DisableChat: true}
	acc := &account.Account{Name: "Alex"}

	applyAuthAndFixes(&game, opts, "1.21", acc, nil)

	want := map[string]bool{"--disableMultiplayer": false, "--disableChat": false}
	for _, a := range game.GameArgs {
		if _, ok := want[a]; ok {
			want[a] = true
		}
	}
	for flag, seen := range want {
		if !seen {
			t.Errorf("expected %s in GameArgs, got %v", flag, game.GameArgs)
		}
	}
}
