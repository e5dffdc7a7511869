package preprocessor

import "strings"

// Project emits the line-for-line view of filedata selected by cfg:
// conditional blocks not active under cfg are blanked out, directives
// other than #define/#file/#endfile are erased, and everything else
// is kept verbatim. Every input line produces exactly one output line.
// Spec section 4.4.
func Project(filedata string, cfg Cfg) string {
	var matching, matched []bool
	var out strings.Builder

	// active tracks whether the current line lies inside a taken
	// conditional branch. It is recomputed only when a line starts
	// with '#' and otherwise carries forward unchanged, mirroring the
	// original's persistent "match" variable: a plain code line
	// inherits the active state of the directive above it.
	active := true

	lines := splitLines(filedata)
	for _, line := range lines {
		def := getdef(line, true)
		ndef := getdef(line, false)

		switch {
		case strings.HasPrefix(line, "#elif "):
			if len(matched) > 0 {
				top := len(matched) - 1
				if matched[top] {
					matching[top] = false
				} else if matchCfgDef(cfg, def) {
					matching[top] = true
					matched[top] = true
				}
			}

		case def != "":
			on := matchCfgDef(cfg, def)
			matching = append(matching, on)
			matched = append(matched, on)

		case ndef != "":
			on := !matchCfgDef(cfg, ndef)
			matching = append(matching, on)
			matched = append(matched, on)

		case line == "#else":
			if len(matched) > 0 {
				top := len(matched) - 1
				matching[top] = !matched[top]
			}

		case strings.HasPrefix(line, "#endif"):
			if len(matched) > 0 {
				matched = matched[:len(matched)-1]
			}
			if len(matching) > 0 {
				matching = matching[:len(matching)-1]
			}
		}

		if line != "" && line[0] == '#' {
			active = true
			for _, m := range matching {
				active = active && m
			}
		}

		switch {
		case strings.HasPrefix(line, "#file \"") || line == "#endfile" || strings.HasPrefix(line, "#define"):
			// Always kept: #file/#endfile carry origin info and
			// #define must survive to be parsed by the macro expander.
		case !active || (line != "" && line[0] == '#'):
			line = ""
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}

	return out.String()
}
