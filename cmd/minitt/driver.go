package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/elaborate"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/manifest"
	"github.com/sunholo/minitt/internal/parser"
)

// loadFiles resolves the set of .stt source paths to elaborate, either
// a single explicit file or every file named by a minitt.yaml project
// (SPEC_FULL.md §2's "Batch/project driver").
func loadFiles(file, manifestPath string) ([]string, *manifest.Project, error) {
	if manifestPath != "" {
		proj, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, nil, err
		}
		return proj.ResolvedFiles(), proj, nil
	}
	if file == "" {
		return nil, nil, fmt.Errorf("must pass a file or --manifest")
	}
	return []string{file}, nil, nil
}

// elaborateAll parses and elaborates every file in order against a
// single shared Elab, so later files can reference earlier
// declarations (spec.md §5's single-writer metacontext/top context).
// Unless quiet is set, it prints each declaration's outcome (and any
// requested normal form/timing) as it goes; quiet suppresses all of
// that per-declaration output, printing only errors, for callers (the
// `check` command) that want nothing but a final pass/fail. It
// returns whether every declaration across every file succeeded.
func elaborateAll(out io.Writer, paths []string, proj *manifest.Project, timing bool, quiet bool) bool {
	e := elaborate.New()
	ok := true

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			ok = false
			continue
		}

		f, errs := parser.ParseFile(path, string(src))
		for _, perr := range errs {
			printErr(out, perr)
			ok = false
		}

		results := elaborateFileTimed(e, f, timing && !quiet, out)
		for _, res := range results {
			if res.Err != nil {
				printErr(out, res.Err)
				ok = false
				continue
			}
			if quiet {
				continue
			}
			fmt.Fprintf(out, "%s %s\n", green("✓"), res.Name)

			wantNormalize := hasTag(res.Tags, "normalize")
			if proj != nil && proj.ShouldNormalize(res.Name) {
				wantNormalize = true
			}
			if wantNormalize {
				if full, ok2 := e.NormalizeTopEntry(res.ID); ok2 {
					fmt.Fprintf(out, "  normal form: %s\n", full)
				}
			}
		}
	}
	return ok
}

// elaborateFileTimed elaborates f's declarations one at a time so that
// a `[elaborate]`-tagged declaration (or --timing) can be wrapped with
// a wall-clock timer, matching SPEC_FULL.md §2's note that timing
// stays a CLI/REPL concern, never a core-package one.
func elaborateFileTimed(e *elaborate.Elab, f *ast.File, timing bool, out io.Writer) []elaborate.DeclResult {
	results := make([]elaborate.DeclResult, 0, len(f.Decls))
	for _, d := range f.Decls {
		wantTiming := timing || hasTag(d.Tags, "elaborate")
		start := time.Now()
		res := e.ElaborateFile(&ast.File{Decls: []*ast.Decl{d}})[0]
		if wantTiming {
			fmt.Fprintf(out, "  %s elaborated in %s\n", d.Name, time.Since(start))
		}
		results = append(results, res)
	}
	return results
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

func printErr(out io.Writer, err error) {
	if rep, ok := errors.AsReport(err); ok {
		fmt.Fprintf(out, "%s [%s] %s: %s\n", red("Error"), rep.Code, rep.Pos, rep.Message)
		return
	}
	fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
}
