package tokenize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func toSlice(tok *Token) []string {
	var out []string
	for ; tok != nil; tok = tok.Next() {
		out = append(out, tok.Str())
	}
	return out
}

var tokenizeTests = []struct {
	name  string
	input string
	want  []string
}{
	{"empty", "", nil},
	{"name", "FOO", []string{"FOO"}},
	{"params", "FOO(a, b)", []string{"FOO", "(", "a", ",", "b", ")"}},
	{"variadic ellipsis", "FOO(a, ...)", []string{"FOO", "(", "a", ",", "...", ")"}},
	{"paste operator", "a##b", []string{"a", "##", "b"}},
	{"string literal kept whole", `"a, b" rest`, []string{`"a, b"`, "rest"}},
	{"char literal with escape", `'\''`, []string{`'\''`}},
	{"number", "123 0x1F", []string{"123", "0x1F"}},
}

func TestTokenize(t *testing.T) {
	for _, tt := range tokenizeTests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSlice(Tokenize(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsName(t *testing.T) {
	tok := Tokenize("FOO 1 (")
	if !tok.IsName() {
		t.Errorf("FOO should be a name")
	}
	if tok.Next().IsName() {
		t.Errorf("1 should not be a name")
	}
	if tok.Next().Next().IsName() {
		t.Errorf("( should not be a name")
	}
}

