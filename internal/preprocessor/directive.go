package preprocessor

import "strings"

// getdef returns the guard identifier named by a conditional directive
// line, with internal spaces stripped, or "" if the line is not that
// kind of directive. When positive is true it recognizes "#ifdef",
// "#if" and "#elif"; when false it recognizes "#ifndef". Spec 4.6.
func getdef(line string, positive bool) string {
	var prefixes []string
	if positive {
		prefixes = []string{"#ifdef ", "#if ", "#elif "}
	} else {
		prefixes = []string{"#ifndef "}
	}

	matched := false
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			matched = true
			break
		}
	}
	if !matched {
		return ""
	}

	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return ""
	}
	rest := line[sp:]
	return strings.ReplaceAll(rest, " ", "")
}

// getHeaderFileName extracts the quoted filename from a #include
// directive line; empty for angle-bracket or malformed includes.
func getHeaderFileName(line string) string {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return ""
	}
	return line[start+1 : start+1+end]
}

// isIdentStart and isIdentPart classify the bytes that can begin,
// respectively continue, a C identifier. Used by macro.go to find
// macro names and check word boundaries around an invocation.
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// indexDirectiveAtLineStart finds the next occurrence of needle at or
// after pos that begins a line (preceded by '\n' or at index 0). Used
// by both the includer's #include scan and the macro expander's
// #define scan.
func indexDirectiveAtLineStart(code, needle string, pos int) int {
	for {
		idx := strings.Index(code[pos:], needle)
		if idx < 0 {
			return -1
		}
		idx += pos
		if idx == 0 || code[idx-1] == '\n' {
			return idx
		}
		pos = idx + len(needle)
	}
}
