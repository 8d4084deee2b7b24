// Package javart detects, probes, and (for Mojang-provided runtimes)
// downloads the JVM the installer will launch the game with.
package javart

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/quasar/mcinstall/internal/core"
)

// Candidate is one JVM executable found by System-policy enumeration,
// together with its probed version (if any).
type Candidate struct {
	File    string
	Version string // "" if the probe failed or timed out
}

// ProbePollInterval/ProbeMaxPolls/ProbeTimeout implement the
// "poll up to 30 times every 100ms, capped at 3s total" JVM probe budget.
const (
	ProbePollInterval = 100 * time.Millisecond
	ProbeMaxPolls     = 30
	ProbeTimeout      = 3 * time.Second
)

var versionLine = regexp.MustCompile(`(?:java|openjdk) version "([^"]+)"`)

// ProbeVersion runs `<exec> -version` and extracts the first quoted
// version token from its stderr.
func ProbeVersion(ctx context.Context, exe string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe, "-version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		if m := versionLine.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", nil
}

// EnumerateSystemCandidates lists JVM executable candidates: PATH, plus
// (Linux) a scan of /usr/lib/jvm/*/bin/java, plus (Windows) a placeholder
// for a registry JavaHome scan — this build environment has no registry
// to query, so it always returns empty there.
func EnumerateSystemCandidates() []string {
	exe := "java"
	if runtime.GOOS == "windows" {
		exe = "java.exe"
	}

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		if _, err := os.Stat(p); err != nil {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	if p, err := exec.LookPath(exe); err == nil {
		add(p)
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		add(filepath.Join(home, "bin", exe))
	}

	switch runtime.GOOS {
	case "linux":
		entries, _ := os.ReadDir("/usr/lib/jvm")
		for _, e := range entries {
			if e.IsDir() {
				add(filepath.Join("/usr/lib/jvm", e.Name(), "bin", exe))
			}
		}
	case "windows":
		out = append(out, registryJavaHomes(exe)...)
	}

	return out
}

// registryJavaHomes scans the Windows registry for JavaHome entries.
// Registry access requires platform-specific syscalls this module doesn't
// carry on non-Windows build targets; implementers on Windows should wire
// golang.org/x/sys/windows/registry here. Returns nil everywhere this
// binary actually runs.
func registryJavaHomes(javaExe string) []string {
	_ = javaExe
	return nil
}

// ProbeAll runs ProbeVersion concurrently over candidates, polling each at
// ProbePollInterval up to ProbeMaxPolls times, and returns results in the
// same order as candidates.
func ProbeAll(ctx context.Context, candidates []string) []Candidate {
	results := make([]Candidate, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, exe string) {
			defer wg.Done()
			version, err := probeWithPolling(ctx, exe)
			if err == nil {
				results[i] = Candidate{File: exe, Version: version}
			} else {
				results[i] = Candidate{File: exe}
			}
		}(i, c)
	}
	wg.Wait()
	return results
}

// probeWithPolling starts the -version probe and polls for completion
// rather than blocking synchronously, matching the concurrency model of
// (stragglers killed once the budget is exhausted).
func probeWithPolling(ctx context.Context, exe string) (string, error) {
	done := make(chan struct {
		v   string
		err error
	}, 1)
	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	go func() {
		v, err := ProbeVersion(probeCtx, exe)
		done <- struct {
			v   string
			err error
		}{v, err}
	}()

	ticker := time.NewTicker(ProbePollInterval)
	defer ticker.Stop()
	for i := 0; i < ProbeMaxPolls; i++ {
		select {
		case r := <-done:
			return r.v, r.err
		case <-ticker.C:
			continue
		case <-probeCtx.Done():
			return "", probeCtx.Err()
		}
	}
	return "", probeCtx.Err()
}

// BestSystemCandidate selects the candidate with the smallest compatible
// major-version score for required, rejecting undetected or incompatible
// candidates.
func BestSystemCandidate(required int, candidates []Candidate) (Candidate, int, bool) {
	var best Candidate
	bestScore := 0
	found := false
	for _, c := range candidates {
		if c.Version == "" {
			continue
		}
		major, ok := core.ParseJVMMajor(c.Version)
		if !ok {
			continue
		}
		score, ok := core.CompatScore(required, major)
		if !ok {
			continue
		}
		if !found || score < bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}
