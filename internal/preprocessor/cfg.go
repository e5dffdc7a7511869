package preprocessor

import "strings"

// Cfg is a sorted-by-appearance, semicolon-joined list of guard names
// that must all be defined for this configuration to be reached. The
// empty string is the baseline: "no extra defines". Spec section 3.
type Cfg = string

const (
	// CfgUnreachable is the sentinel a branch collapses to once any
	// guard in its stack is known to be false ("0").
	CfgUnreachable = "0"
	// CfgAlwaysOn is the sentinel for a guard that is trivially true
	// and therefore dropped when building a configuration string.
	CfgAlwaysOn = "1"
)

// replaceIfDefined rewrites every "#if defined(NAME)" directive whose
// closing paren is immediately followed by a newline into the
// equivalent "#ifdef NAME", so the rest of the pipeline only ever has
// to recognize #ifdef/#ifndef. Spec section 4.3.
func replaceIfDefined(s string) string {
	const prefix = "#if defined("
	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(s[pos:], prefix)
		if idx < 0 {
			b.WriteString(s[pos:])
			break
		}
		idx += pos
		closeParen := strings.IndexByte(s[idx+len(prefix):], ')')
		if closeParen < 0 {
			b.WriteString(s[pos:])
			break
		}
		closeParen += idx + len(prefix)
		if closeParen+1 >= len(s) || s[closeParen+1] != '\n' {
			// Not the simple "defined(NAME)\n" shape; leave untouched
			// and keep scanning past this occurrence.
			b.WriteString(s[pos : idx+1])
			pos = idx + 1
			continue
		}
		name := s[idx+len(prefix) : closeParen]
		b.WriteString(s[pos:idx])
		b.WriteString("#ifdef ")
		b.WriteString(name)
		pos = closeParen + 1
	}
	return b.String()
}

// EnumerateConfigs is the ConfigEnumerator: it walks the top-level
// conditional directives of a
// translation unit (after inclusion) and collects the set of distinct
// reachable guard-combinations. Spec section 4.3.
func EnumerateConfigs(filedata string) []Cfg {
	result := []Cfg{""}
	seen := map[string]bool{"": true}

	var defStack []string
	fileLevel := 0

	for _, line := range splitLines(filedata) {
		if strings.HasPrefix(line, "#file ") {
			fileLevel++
			continue
		}
		if line == "#endfile" {
			if fileLevel > 0 {
				fileLevel--
			}
			continue
		}
		if fileLevel > 0 {
			continue
		}

		def := getdef(line, true) + getdef(line, false)
		if def != "" {
			if len(defStack) > 0 && strings.HasPrefix(line, "#elif ") {
				defStack = defStack[:len(defStack)-1]
			}
			defStack = append(defStack, def)

			cfg := buildCfgString(defStack)
			if !seen[cfg] {
				seen[cfg] = true
				result = append(result, cfg)
			}
		}

		if strings.HasPrefix(line, "#else") && len(defStack) > 0 {
			top := defStack[len(defStack)-1]
			next := CfgAlwaysOn
			if top == CfgAlwaysOn {
				next = CfgUnreachable
			}
			defStack[len(defStack)-1] = next
		}

		if strings.HasPrefix(line, "#endif") && len(defStack) > 0 {
			defStack = defStack[:len(defStack)-1]
		}
	}

	return result
}

// buildCfgString joins the guard stack with ';', dropping tokens that
// are trivially true ("1") and stopping at the first token known
// false ("0"): only the guards before it are joined and returned.
func buildCfgString(stack []string) Cfg {
	var parts []string
	for _, tok := range stack {
		if tok == CfgUnreachable {
			break
		}
		if tok == CfgAlwaysOn {
			continue
		}
		parts = append(parts, tok)
	}
	return strings.Join(parts, ";")
}

// matchCfgDef reports whether def is satisfied by cfg: "0" never
// matches, "1" always matches, otherwise def must appear as a
// semicolon-separated token of cfg. Spec section 4.4.
func matchCfgDef(cfg Cfg, def string) bool {
	if def == CfgUnreachable {
		return false
	}
	if def == CfgAlwaysOn {
		return true
	}
	if cfg == "" {
		return false
	}
	for _, tok := range strings.Split(cfg, ";") {
		if tok == def {
			return true
		}
	}
	return false
}

// splitLines splits s on '\n' the way std::getline over an
// istringstream does: every line is returned sans its terminator, and
// a final empty element produced only by a trailing newline is
// dropped (getline never yields a trailing empty "line" for that).
// A final line with no trailing newline is still returned as-is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
