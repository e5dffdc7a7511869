package preprocessor

import (
	"strings"

	"github.com/sourcelens/cppre/internal/diag"
	"github.com/sourcelens/cppre/internal/tokenize"
)

// Macro is one #define record. Params is nil for an object-like
// macro; a non-nil (possibly empty) slice marks it function-like.
// Body is the text exactly as written after the name (object-like) or
// after the closing ')' of the parameter list (function-like). Spec
// sections 3 and 4.5.
type Macro struct {
	Name     string
	Params   []string
	Variadic bool
	Body     string
}

// varArgsName is the parameter name bound to a variadic macro's
// trailing "...", matching the __VA_ARGS__ convention used in S3.
const varArgsName = "__VA_ARGS__"

func (m Macro) isFunctionLike() bool { return m.Params != nil }

func (m Macro) variadicIndex() int {
	if !m.Variadic {
		return -1
	}
	return len(m.Params) - 1
}

func (m Macro) paramIndex(name string) int {
	for i, p := range m.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// parseDefine parses the text following "#define " on a single
// directive line (already joined to one line, no trailing newline)
// into a Macro. Returns false only when there is no identifier to
// use as the macro's name.
func parseDefine(text string) (Macro, bool) {
	if text == "" || !isIdentStart(text[0]) {
		return Macro{}, false
	}
	i := 1
	for i < len(text) && isIdentPart(text[i]) {
		i++
	}
	name := text[:i]
	rest := text[i:]

	if strings.HasPrefix(rest, "(") {
		end := findMatchingParen(rest)
		if end < 0 {
			return Macro{Name: name, Body: strings.TrimLeft(rest, " \t")}, true
		}
		params, variadic := parseParams(rest[1:end])
		body := strings.TrimLeft(rest[end+1:], " \t")
		return Macro{Name: name, Params: params, Variadic: variadic, Body: body}, true
	}

	return Macro{Name: name, Body: strings.TrimLeft(rest, " \t")}, true
}

// findMatchingParen returns the index of the ')' matching the '(' at
// s[0], or -1 if s does not start with '(' or it is never closed.
func findMatchingParen(s string) int {
	if s == "" || s[0] != '(' {
		return -1
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseParams walks a parameter list's token stream (the tokenizer
// capability from spec section 6, used here exactly as described:
// only to identify a macro's parameter list) and collects parameter
// names, recognizing a trailing "..." as the variadic marker.
func parseParams(paramStr string) (params []string, variadic bool) {
	params = []string{}
	for tok := tokenize.Tokenize(paramStr); tok != nil; tok = tok.Next() {
		switch {
		case tok.Str() == ",":
			// separator, nothing to record
		case tok.Str() == "...":
			variadic = true
			params = append(params, varArgsName)
		case tok.IsName():
			params = append(params, tok.Str())
		}
	}
	return params, variadic
}

// Expand substitutes args into the macro body per spec section 4.5:
// object-like macros return their body untouched (there are no
// parameters to substitute); function-like macros walk the body
// token by token, replacing parameter references, stringifying a
// "#param", pasting "a##b" with no intervening space, expanding the
// variadic parameter to the comma-joined tail of args (suppressing a
// preceding ", ##" comma when that tail is empty), and inserting a
// single space between two adjacent identifier-like pieces that would
// otherwise fuse into one token.
func (m Macro) Expand(args []string) string {
	if !m.isFunctionLike() {
		return m.Body
	}

	vi := m.variadicIndex()
	var out strings.Builder
	var prev string
	// pasted is set by a "##" token and consumed by the very next
	// emit, so a real paste never gets the anti-fusion space that
	// would otherwise separate two adjacent identifier-like pieces —
	// that space is only for pieces that happen to land next to each
	// other without a "##" asking for them to fuse.
	pasted := false
	emit := func(s string) {
		if s == "" {
			return
		}
		if !pasted && prev != "" && looksFusable(prev) && looksFusable(s) {
			out.WriteByte(' ')
		}
		out.WriteString(s)
		prev = s
		pasted = false
	}

	pendingVariadicComma := false
	for tok := tokenize.Tokenize(m.Body); tok != nil; tok = tok.Next() {
		str := tok.Str()

		if str == "##" {
			pasted = true
			continue
		}

		if vi >= 0 && str == "," {
			if nxt := tok.Next(); nxt != nil && nxt.Str() == "##" {
				pendingVariadicComma = true
				continue
			}
		}

		stringify := false
		if str == "#" {
			if nxt := tok.Next(); nxt != nil && nxt.IsName() {
				stringify = true
				tok = nxt
				str = tok.Str()
			}
		}

		idx := m.paramIndex(str)
		if idx < 0 {
			emit(str)
			continue
		}

		if idx == vi {
			var tail []string
			if idx < len(args) {
				tail = args[idx:]
			}
			if len(tail) == 0 {
				pendingVariadicComma = false
				continue
			}
			if pendingVariadicComma {
				out.WriteString(", ")
				prev = ","
			}
			pendingVariadicComma = false
			emit(strings.Join(tail, ", "))
			continue
		}

		val := ""
		if idx < len(args) {
			val = args[idx]
		}
		if stringify {
			val = `"` + val + `"`
		}
		emit(val)
	}
	return out.String()
}

func looksFusable(s string) bool {
	if s == "" {
		return false
	}
	return isIdentStart(s[0]) || (s[0] >= '0' && s[0] <= '9')
}

// ExpandMacros implements the MacroTable/MacroExpander pair from spec
// section 4.5: it scans projected text left to right, consuming each
// top-of-line #define into a Macro, substituting invocations of that
// macro until a later #define or #undef of the same name is reached,
// and finally erasing every remaining #undef line. sink receives the
// one error the core can raise: an unterminated string or character
// literal encountered mid-scan, at which point expansion of the whole
// text aborts and an empty result is returned for this configuration
// (spec section 7).
func ExpandMacros(code, filename string, sink diag.Sink) string {
	if sink == nil {
		sink = diag.Discard
	}
	defPos := 0
	for {
		idx := indexDirectiveAtLineStart(code, "#define ", defPos)
		if idx < 0 {
			break
		}
		defPos = idx

		lineEnd := strings.IndexByte(code[defPos:], '\n')
		var directiveEnd int
		if lineEnd < 0 {
			directiveEnd = len(code)
		} else {
			directiveEnd = defPos + lineEnd
		}

		macroText := code[defPos+len("#define ") : directiveEnd]
		code = code[:defPos] + code[directiveEnd:]

		macro, ok := parseDefine(macroText)
		if !ok {
			continue
		}

		expanded, aborted := expandInvocations(code, defPos, macro, filename, sink)
		if aborted {
			return ""
		}
		code = expanded
	}

	return eraseUndefLines(code)
}

// expandInvocations scans code from "from" onward for invocations of
// macro.Name, replacing each with its expansion, until it hits a
// later #define or #undef of the same name (which stops further
// substitution of this macro without consuming that directive — the
// outer ExpandMacros loop will process it on its own next pass).
func expandInvocations(code string, from int, macro Macro, filename string, sink diag.Sink) (string, bool) {
	pos := from
	for pos < len(code) {
		ch := code[pos]

		switch {
		case ch == '"' || ch == '\'':
			end, ok := scanLiteralFrom(code, pos)
			if !ok {
				sink.Report(diag.SeverityError, "noQuoteCharPair", diag.Location{File: filename}, "no pair for character literal; file is either invalid or not supported")
				return "", true
			}
			pos = end
			continue

		case ch == '#':
			if directiveStopsExpansion(code, pos, macro.Name) {
				return code, false
			}
			pos++
			continue

		case code[pos] == macro.Name[0] && strings.HasPrefix(code[pos:], macro.Name):
			if !isWordBoundary(code, pos, len(macro.Name)) {
				pos++
				continue
			}
			replaced, newPos, ok := tryExpandHere(code, pos, macro)
			if !ok {
				pos++
				continue
			}
			code = replaced
			pos = newPos
			continue

		default:
			pos++
		}
	}
	return code, false
}

// directiveStopsExpansion reports whether the directive starting at
// pos is a "#define NAME" or "#undef NAME" for the macro currently
// being expanded, which halts substitution of that macro from here.
func directiveStopsExpansion(code string, pos int, name string) bool {
	rest := code[pos:]
	var after string
	switch {
	case strings.HasPrefix(rest, "#undef "):
		after = rest[len("#undef "):]
	case strings.HasPrefix(rest, "#define "):
		after = rest[len("#define "):]
	default:
		return false
	}
	if !strings.HasPrefix(after, name) {
		return false
	}
	tail := after[len(name):]
	if tail != "" && isIdentPart(tail[0]) {
		return false
	}
	return true
}

// isWordBoundary reports whether code[pos:pos+n] is bounded on both
// sides by non-identifier characters.
func isWordBoundary(code string, pos, n int) bool {
	if pos > 0 && isIdentPart(code[pos-1]) {
		return false
	}
	if pos+n < len(code) && isIdentPart(code[pos+n]) {
		return false
	}
	return true
}

// tryExpandHere attempts to expand the macro invocation starting at
// pos. Returns the updated code, the position to resume scanning
// from, and whether an invocation was actually recognized there (a
// function-like macro not followed by '(' is left untouched).
func tryExpandHere(code string, pos int, macro Macro) (string, int, bool) {
	after := pos + len(macro.Name)

	if !macro.isFunctionLike() {
		expansion := macro.Body
		newCode := code[:pos] + expansion + code[after:]
		return newCode, pos + len(expansion), true
	}

	scan := after
	for scan < len(code) && (code[scan] == ' ' || code[scan] == '\t') {
		scan++
	}
	if scan >= len(code) || code[scan] != '(' {
		return code, after, false
	}

	args, argsEnd, newlines, ok := parseCallArgs(code, scan)
	if !ok {
		return code, after, false
	}

	// "A()" parses as one empty argument; for a zero-parameter macro
	// that is a call with no arguments.
	if len(macro.Params) == 0 && len(args) == 1 && args[0] == "" {
		args = nil
	}

	if !macro.Variadic && len(args) != len(macro.Params) {
		return code, after, false
	}

	expansion := strings.Repeat("\n", newlines) + macro.Expand(args)
	newCode := code[:pos] + expansion + code[argsEnd:]
	return newCode, pos + len(expansion), true
}

// parseCallArgs parses a parenthesized, comma-separated argument list
// starting at code[open] == '(' and returns the argument texts with
// their leading spaces dropped (trailing spaces are kept), the index just past the closing ')', and the number of
// newlines consumed (so the caller can re-insert them as blank lines
// and keep line numbers stable). Spec section 4.5, "Argument parsing".
func parseCallArgs(code string, open int) (args []string, end int, newlines int, ok bool) {
	depth := 0
	var cur strings.Builder
	leading := true

	i := open
	for i < len(code) {
		c := code[i]
		switch {
		case c == '"' || c == '\'':
			litEnd, litOK := scanLiteralFrom(code, i)
			if !litOK {
				return nil, 0, 0, false
			}
			cur.WriteString(code[i:litEnd])
			i = litEnd
			leading = false
			continue

		case c == '(':
			depth++
			if depth > 1 {
				cur.WriteByte(c)
			}
			i++

		case c == ')':
			depth--
			if depth == 0 {
				args = append(args, cur.String())
				return args, i + 1, newlines, true
			}
			cur.WriteByte(c)
			i++

		case c == ',' && depth == 1:
			args = append(args, cur.String())
			cur.Reset()
			leading = true
			i++

		case c == '\n':
			newlines++
			i++

		case c == ' ' && leading:
			i++

		default:
			cur.WriteByte(c)
			leading = false
			i++
		}
	}
	return nil, 0, 0, false
}

// scanLiteralFrom returns the index just past the closing delimiter
// of the string/char literal starting at code[i]. A backslash escapes
// the next character unconditionally. ok is false if the literal
// never closes before EOF.
func scanLiteralFrom(code string, i int) (int, bool) {
	quote := code[i]
	j := i + 1
	for j < len(code) {
		switch code[j] {
		case '\\':
			j += 2
		case quote:
			return j + 1, true
		default:
			j++
		}
	}
	return 0, false
}

// eraseUndefLines removes every remaining "#undef NAME" line once all
// macro expansion is done, replacing it with an empty line to keep
// line numbers stable.
func eraseUndefLines(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#undef") {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
