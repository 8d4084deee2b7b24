// Command jvmprobe is a small diagnostic tool over internal/javart: it
// enumerates and probes system JVM candidates for a required major
// version, then runs the same Resolve path the installer itself uses and
// prints what it picked.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/javart"
)

func main() {
	required := flag.Int("major", 21, "required JVM major version")
	jvmDir := flag.String("jvm-dir", "", "directory Resolve may install a Mojang-provided runtime into (defaults to a temp dir)")
	strict := flag.Bool("strict", false, "SHA-1 verify Mojang-provided JVM files as well as size-verify them")
	policy := flag.String("policy", "system-then-mojang", "static|system|mojang|system-then-mojang|mojang-then-system")
	staticPath := flag.String("static-path", "", "executable path for -policy=static")
	flag.Parse()

	p, err := parsePolicy(*policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Required major: %d\n", *required)

	fmt.Println("\nSystem candidates:")
	candidates := javart.ProbeAll(context.Background(), javart.EnumerateSystemCandidates())
	if len(candidates) == 0 {
		fmt.Println("  (none found)")
	}
	for _, c := range candidates {
		fmt.Printf("  %s -> %q\n", c.File, c.Version)
	}
	if best, score, ok := javart.BestSystemCandidate(*required, candidates); ok {
		fmt.Printf("Best system candidate: %s (score %d)\n", best.File, score)
	} else {
		fmt.Println("No compatible system candidate.")
	}

	dir := *jvmDir
	if dir == "" {
		dir, err = os.MkdirTemp("", "jvmprobe-*")
		if err != nil {
			fmt.Fprintln(os.Stderr, "mktemp:", err)
			os.Exit(1)
		}
		defer os.RemoveAll(dir)
	}

	mgr := download.NewManager(4)
	sel, err := javart.Resolve(context.Background(), p, *required, *staticPath, mgr, dir, *strict, func(c javart.Candidate) {
		fmt.Printf("  considering %s -> %q\n", c.File, c.Version)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "\nResolve failed:", err)
		os.Exit(1)
	}

	fmt.Printf("\nResolved: %s (detected %q)\n", sel.Descriptor.File, sel.Descriptor.DetectedVersion)
	if sel.Descriptor.CompatScore != nil {
		fmt.Printf("Compat score: %d\n", *sel.Descriptor.CompatScore)
	}
	if sel.Plan != nil {
		fmt.Printf("Mojang install plan: %d file(s), %d link(s)\n", len(sel.Plan.Entries), len(sel.Plan.Links))
	}
}

func parsePolicy(s string) (javart.Policy, error) {
	switch s {
	case "static":
		return javart.PolicyStatic, nil
	case "system":
		return javart.PolicySystem, nil
	case "mojang":
		return javart.PolicyMojang, nil
	case "system-then-mojang":
		return javart.PolicySystemThenMojang, nil
	case "mojang-then-system":
		return javart.PolicyMojangThenSystem, nil
	default:
		return 0, fmt.Errorf("jvmprobe: unknown -policy %q", s)
	}
}
