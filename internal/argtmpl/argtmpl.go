// Package argtmpl substitutes ${name} placeholders inside JVM/game argument
// templates against a resolved variable map.
package argtmpl

import "strings"

// Expand replaces every ${name} occurrence in tmpl using vars, scanning left
// to right exactly once: a value that itself contains "${" is never
// rescanned for further placeholders. A token with no entry in vars is left
// verbatim in the output rather than failing the whole template.
func Expand(tmpl string, vars map[string]string) string {
	var out strings.Builder
	i := 0
	for i < len(tmpl) {
		start := strings.Index(tmpl[i:], "${")
		if start < 0 {
			out.WriteString(tmpl[i:])
			break
		}
		start += i
		out.WriteString(tmpl[i:start])

		end := strings.IndexByte(tmpl[start+2:], '}')
		if end < 0 {
			// No closing brace: treat the rest as a literal, matching the
			// reference launcher's tolerance of malformed trailing templates.
			out.WriteString(tmpl[start:])
			i = len(tmpl)
			break
		}
		end += start + 2

		name := tmpl[start+2 : end]
		if val, ok := vars[name]; ok {
			out.WriteString(val)
		} else {
			out.WriteString(tmpl[start : end+1])
		}
		i = end + 1
	}
	return out.String()
}

// ExpandAll expands every entry of tmpls in order.
func ExpandAll(tmpls []string, vars map[string]string) []string {
	out := make([]string, len(tmpls))
	for i, t := range tmpls {
		out[i] = Expand(t, vars)
	}
	return out
}

// ContainsToken reports whether any template in tmpls references the given
// variable name, without performing substitution. Used to detect, e.g.,
// whether a resolution_width/resolution_height token is already present
// before falling back to synthesized --width/--height arguments.
func ContainsToken(tmpls []string, name string) bool {
	needle := "${" + name + "}"
	for _, t := range tmpls {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}
