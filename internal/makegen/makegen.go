// Package makegen renders a tiny generated Makefile that drives cppre
// once per discovered configuration of a translation unit. It performs
// no build execution itself — purely textual output.
package makegen

import (
	"fmt"
	"strings"

	"github.com/sourcelens/cppre/internal/preprocessor"
)

// targetName turns a configuration string into a Makefile-safe phony
// target name: the baseline configuration becomes "baseline", anything
// else has its ';' separators replaced with '-'.
func targetName(cfg preprocessor.Cfg) string {
	if cfg == "" {
		return "baseline"
	}
	return strings.ReplaceAll(cfg, ";", "-")
}

// defineFlags reconstructs the -D flags cppre needs to reach cfg.
func defineFlags(cfg preprocessor.Cfg) []string {
	if cfg == "" {
		return nil
	}
	return strings.Split(cfg, ";")
}

// Render generates a Makefile with one phony target per entry in cfgs,
// each invoking cppre against source with the -D flags needed to reach
// that configuration. outDir is where cppre is expected to write its
// per-configuration .i files.
func Render(source string, cfgs []preprocessor.Cfg, outDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# generated by cppre; do not edit by hand\n\n")

	var all []string
	for _, cfg := range cfgs {
		name := targetName(cfg)
		all = append(all, name)

		fmt.Fprintf(&b, ".PHONY: %s\n", name)
		fmt.Fprintf(&b, "%s:\n", name)
		fmt.Fprintf(&b, "\tcppre")
		for _, def := range defineFlags(cfg) {
			fmt.Fprintf(&b, " -D %s", def)
		}
		fmt.Fprintf(&b, " --out-dir %s %s\n\n", outDir, source)
	}

	fmt.Fprintf(&b, ".PHONY: all\n")
	fmt.Fprintf(&b, "all: %s\n", strings.Join(all, " "))

	return b.String()
}
