package rules

import "testing"

func TestMatchesEmptyAlwaysApplies(t *testing.T) {
	if !Matches(nil, Environment{}) {
		t.Error("empty rule array should always apply")
	}
}

func TestMatchesLastRuleWins(t *testing.T) {
	rs := []Rule{
		{Action: Allow},
		{Action: Disallow, OS: &OS{Name: "osx"}},
	}
	env := Environment{OSName: "osx"}
	if Matches(rs, env) {
		t.Error("expected last matching rule (disallow) to win on osx")
	}
	env2 := Environment{OSName: "linux"}
	if !Matches(rs, env2) {
		t.Error("expected allow to apply on linux since the disallow rule doesn't match")
	}
}

func TestMatchesDefaultsToDisallow(t *testing.T) {
	rs := []Rule{{Action: Allow, OS: &OS{Name: "windows"}}}
	if Matches(rs, Environment{OSName: "linux"}) {
		t.Error("expected no match to default to disallow")
	}
}

func TestMatchesFeatures(t *testing.T) {
	rs := []Rule{{Action: Allow, Features: map[string]bool{"is_demo_user": true}}}
	if Matches(rs, Environment{Features: map[string]bool{"is_demo_user": false}}) {
		t.Error("expected feature mismatch to disallow")
	}
	if !Matches(rs, Environment{Features: map[string]bool{"is_demo_user": true}}) {
		t.Error("expected feature match to allow")
	}
}

func TestArchEqualX64Alias(t *testing.T) {
	if !archEqual("x64", "x86_64") {
		t.Error("x64 and x86_64 should be treated as equal")
	}
}

func TestMatchesOSVersionRegex(t *testing.T) {
	rs := []Rule{{Action: Allow, OS: &OS{Name: "osx", Version: `^10\.(?:[0-9]|1[0-5])\.`}}}
	if !Matches(rs, Environment{OSName: "osx", OSVersion: "10.9.0"}) {
		t.Error("expected 10.9.0 to match the legacy macOS version pattern")
	}
	if Matches(rs, Environment{OSName: "osx", OSVersion: "13.2.1"}) {
		t.Error("expected 13.2.1 not to match the legacy macOS version pattern")
	}
}

func TestMatchesOSVersionInvalidPatternNeverMatches(t *testing.T) {
	rs := []Rule{{Action: Allow, OS: &OS{Version: "("}}}
	if Matches(rs, Environment{OSVersion: "anything"}) {
		t.Error("an invalid regex should never match")
	}
}

func TestNormalizeOSName(t *testing.T) {
	cases := map[string]string{"darwin": "osx", "windows": "windows", "linux": "linux"}
	for goos, want := range cases {
		if got := NormalizeOSName(goos); got != want {
			t.Errorf("NormalizeOSName(%q) = %q, want %q", goos, got, want)
		}
	}
}
