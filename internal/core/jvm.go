package core

import "regexp"

// JVMDescriptor describes a selected JVM executable and Mojang-provided
// post-install finalization info.
type JVMDescriptor struct {
	File              string
	DetectedVersion   string // "" if undetected
	CompatScore       *int   // nil if incompatible or undetected
	ExecutableFiles   []string
	Links             []JVMLink
}

// JVMLink is a (link, target) pair to create during JVM finalization.
type JVMLink struct {
	Link   string
	Target string
}

// CompatScore computes the major-version compatibility score:
//   - required == detected → 0
//   - required >= 9: score = detected - required, but only if detected >= required
//   - required <= 8: only an exact match is compatible
//
// Returns (score, true) if compatible, (0, false) otherwise.
func CompatScore(required, detected int) (int, bool) {
	if required == detected {
		return 0, true
	}
	if required <= 8 {
		return 0, false
	}
	if detected < required {
		return 0, false
	}
	return detected - required, true
}

// jvmMajorPattern matches a leading "1.<major>." (old style, e.g. 1.8.0_111)
// or a bare "<major>." (modern style, e.g. 17.0.2), and also the "<major>u<update>"
// form (e.g. 8u51).
var (
	oldStyleMajor = regexp.MustCompile(`^1\.(\d+)[._]`)
	modernMajor   = regexp.MustCompile(`^(\d+)[.u]`)
	bareMajor     = regexp.MustCompile(`^(\d+)$`)
)

// ParseJVMMajor extracts the major version number from a `java -version`
// style string, test cases: "1.8.0_111" → 8, "17.0.2" → 17,
// "8u51" → 8.
func ParseJVMMajor(s string) (int, bool) {
	for _, re := range []*regexp.Regexp{oldStyleMajor, modernMajor, bareMajor} {
		if m := re.FindStringSubmatch(s); m != nil {
			return atoiSafe(m[1]), true
		}
	}
	return 0, false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
