package core

import (
	"encoding/json"
	"fmt"

	"github.com/quasar/mcinstall/internal/rules"
)

// UnmarshalJSON decodes a modern argument-vector entry, which is either a
// bare string or an object `{rules: [...], value: <string|[]string>}`.
func (a *ArgEntry) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		*a = ArgEntry{Literal: literal}
		return nil
	}

	var obj struct {
		Rules []rules.Rule    `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("core: argument entry: %w", err)
	}

	var single string
	if err := json.Unmarshal(obj.Value, &single); err == nil {
		*a = ArgEntry{Rules: obj.Rules, Values: []string{single}}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(obj.Value, &multi); err != nil {
		return fmt.Errorf("core: argument entry value: %w", err)
	}
	*a = ArgEntry{Rules: obj.Rules, Values: multi}
	return nil
}

// Resolve returns the entry's values if its rules (if any) apply to env, or
// nil if it's gated out. A bare literal always applies.
func (a ArgEntry) Resolve(env rules.Environment) []string {
	if a.Literal != "" {
		return []string{a.Literal}
	}
	if !rules.Matches(a.Rules, env) {
		return nil
	}
	return a.Values
}

// AccumulatedArguments holds the jvm/game argument template vectors built
// while walking the hierarchy from the requested (most-derived) version
// to its ancestors: accumulated in hierarchy order, but the first level
// with legacy minecraftArguments replaces everything accumulated so far
// and stops further accumulation.
type AccumulatedArguments struct {
	JVM    []string
	Game   []string
	legacy bool // once true, Accumulate becomes a no-op
}

// Accumulate folds one hierarchy level's arguments into the running totals.
// Levels are expected to be visited most-derived first, as
// Hierarchy.Arguments does, so that once a level's legacy args are applied
// further (less-derived) accumulation stops.
func (a *AccumulatedArguments) Accumulate(meta VersionMeta, env rules.Environment) {
	if a.legacy {
		return
	}
	if meta.MinecraftArguments != "" {
		a.JVM = nil
		a.Game = splitWhitespace(meta.MinecraftArguments)
		a.legacy = true
		return
	}
	if meta.Arguments == nil {
		return
	}
	for _, e := range meta.Arguments.JVM {
		a.JVM = append(a.JVM, e.Resolve(env)...)
	}
	for _, e := range meta.Arguments.Game {
		a.Game = append(a.Game, e.Resolve(env)...)
	}
}

func splitWhitespace(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if isSpace {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// LegacyJVMArgs is the fixed JVM-args literal installed in place of a
// modern arguments.jvm vector when a hierarchy leaf only has legacy
// minecraftArguments.
var LegacyJVMArgs = []string{
	"-Djava.library.path=${natives_directory}",
	"-Dminecraft.launcher.brand=${launcher_name}",
	"-Dminecraft.launcher.version=${launcher_version}",
	"-cp",
	"${classpath}",
}
