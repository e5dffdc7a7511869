package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sourcelens/cppre/internal/diag"
	"github.com/sourcelens/cppre/internal/makegen"
	"github.com/sourcelens/cppre/internal/preprocessor"
)

func main() {
	app := cli.NewApp()
	app.Name = "cppre"
	app.Usage = "Split a C/C++ translation unit into one preprocessed variant per reachable #ifdef configuration"
	app.ArgsUsage = "<file>"

	app.Flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "include-dir",
			Aliases: []string{"I"},
			Usage:   "additional directory to search for #include headers",
		},
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "add NAME (optionally NAME=VALUE) as an always-on guard to every enumerated configuration",
		},
		&cli.StringFlag{
			Name:  "out-dir",
			Value: ".",
			Usage: "directory to write the per-configuration .i files into",
		},
		&cli.BoolFlag{
			Name:  "makefile",
			Usage: "also emit a generated Makefile with one target per configuration",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one translation unit, got %d", c.NArg())
	}
	source := c.Args().First()

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer f.Close()

	sink := diag.WriterSink{W: os.Stderr}

	normalized, cfgs, err := preprocessor.PreprocessNormalize(f, source, c.StringSlice("include-dir"))
	if err != nil {
		return fmt.Errorf("preprocessing %s: %w", source, err)
	}
	cfgs = withPreDefines(cfgs, preDefineNames(c.StringSlice("define")))

	if err := os.MkdirAll(c.String("out-dir"), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.String("out-dir"), err)
	}

	for _, cfg := range cfgs {
		code := preprocessor.GetCode(normalized, cfg, source, sink)
		outPath := filepath.Join(c.String("out-dir"), variantName(source, cfg))
		if err := os.WriteFile(outPath, []byte(code), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("%s -> %s\n", cfgLabel(cfg), outPath)
	}

	if c.Bool("makefile") {
		mk := makegen.Render(source, cfgs, c.String("out-dir"))
		mkPath := filepath.Join(c.String("out-dir"), "Makefile")
		if err := os.WriteFile(mkPath, []byte(mk), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", mkPath, err)
		}
	}

	return nil
}

// preDefineNames strips an optional "=VALUE" suffix from each -D flag;
// the core only tracks guard presence, never a value.
func preDefineNames(defs []string) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		if idx := strings.IndexByte(d, '='); idx >= 0 {
			d = d[:idx]
		}
		names[i] = d
	}
	return names
}

// withPreDefines folds a set of always-on guard names into every
// enumerated configuration, so a caller can force a build variant even
// when the source's own #ifdefs wouldn't otherwise reach it.
func withPreDefines(cfgs []preprocessor.Cfg, always []string) []preprocessor.Cfg {
	if len(always) == 0 {
		return cfgs
	}
	extra := strings.Join(always, ";")
	out := make([]preprocessor.Cfg, len(cfgs))
	for i, cfg := range cfgs {
		if cfg == "" {
			out[i] = extra
		} else {
			out[i] = cfg + ";" + extra
		}
	}
	return out
}

func cfgLabel(cfg preprocessor.Cfg) string {
	if cfg == "" {
		return "baseline"
	}
	return cfg
}

func variantName(source string, cfg preprocessor.Cfg) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return fmt.Sprintf("%s.%s.i", base, strings.ReplaceAll(cfgLabel(cfg), ";", "-"))
}
