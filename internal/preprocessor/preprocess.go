package preprocessor

import (
	"io"

	"github.com/sourcelens/cppre/internal/diag"
)

// Preprocess implements the primary entry point from spec section 6:
// it reads input, splices in every reachable #include, enumerates the
// distinct configurations the conditional directives expose, and
// returns the fully macro-expanded text for every one of them, keyed
// by its Cfg. The baseline configuration "" is always present.
func Preprocess(input io.Reader, filename string, includeDirs []string, sink diag.Sink) (map[Cfg]string, error) {
	normalized, cfgs, err := PreprocessNormalize(input, filename, includeDirs)
	if err != nil {
		return nil, err
	}

	result := make(map[Cfg]string, len(cfgs))
	for _, cfg := range cfgs {
		result[cfg] = GetCode(normalized, cfg, filename, sink)
	}
	return result, nil
}

// PreprocessNormalize is the secondary entry point from spec section
// 6, for callers that only need one configuration's view: it returns
// the normalized, include-spliced text plus the list of reachable
// configurations, deferring macro expansion to a later GetCode call.
func PreprocessNormalize(input io.Reader, filename string, includeDirs []string) (string, []Cfg, error) {
	text, err := Read(input)
	if err != nil {
		return "", nil, err
	}
	text = TrimLeadingIndent(text)
	text = RemoveSpaceNearNL(text)

	inc := NewIncluder(includeDirs)
	text = inc.HandleIncludes(text, filename)

	text = replaceIfDefined(text)
	cfgs := EnumerateConfigs(text)
	return text, cfgs, nil
}

// GetCode projects normalized text down to one configuration and
// expands its macros, per spec section 4.4/4.5's combined contract.
// An unterminated string/character literal aborts expansion for this
// configuration only, returning "" (spec section 7); other
// configurations derived from the same normalized text are unaffected.
func GetCode(normalized string, cfg Cfg, filename string, sink diag.Sink) string {
	projected := Project(normalized, cfg)
	return ExpandMacros(projected, filename, sink)
}
