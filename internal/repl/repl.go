// Package repl implements the interactive minitt shell: each line is
// parsed as a declaration or a bare expression, elaborated against the
// running top-level context, and the resulting term/type printed —
// mirroring the teacher's internal/repl (peterh/liner line editing,
// fatih/color banners) but driving the elaborator instead of AILANG's
// type/eval pipeline (SPEC_FULL.md §2).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/elaborate"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/parser"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is the interactive shell state: a single running elaborator
// (so declarations from earlier lines stay in scope for later ones)
// plus a counter used to name anonymous expression results.
type REPL struct {
	elab       *elaborate.Elab
	normalize  bool // :normalize toggle, mirrors the [normalize] decl tag
	exprCount  int
	version    string
	history    []string
}

// New creates a REPL with a fresh elaborator.
func New(version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{elab: elaborate.New(), version: version}
}

// colorEnabled reports whether stdout is a terminal, deciding whether
// Start prints its banner and messages in color or falls back to plain output
// for a pipe or redirected file.
func (r *REPL) colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Start runs the read-eval-print loop until EOF or `:quit`, writing to
// out. Input lines come from the terminal through liner; in is not
// read.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".minitt_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	if !r.colorEnabled() {
		color.NoColor = true
	}

	prompt := "minitt> "
	fmt.Fprintf(out, "%s %s\n", bold("minitt"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(s string) (c []string) {
		if !strings.HasPrefix(s, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":normalize", ":type", ":history"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}
		r.evalLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleCommand processes a `:`-prefixed REPL command, returning true
// if the REPL should exit.
func (r *REPL) handleCommand(cmd string, out io.Writer) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	case ":help", ":h":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help               show this help")
		fmt.Fprintln(out, "  :quit               exit the REPL")
		fmt.Fprintln(out, "  :normalize          toggle printing normal forms")
		fmt.Fprintln(out, "  :type <decl-name>   show a previously elaborated declaration's type")
		fmt.Fprintln(out, "  :history            show input history")
	case ":normalize":
		r.normalize = !r.normalize
		fmt.Fprintf(out, "normalize: %v\n", r.normalize)
	case ":type":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :type <name>")
			return false
		}
		id, ok := r.elab.Top.Lookup(fields[1])
		if !ok {
			fmt.Fprintf(out, "%s: unbound name %s\n", red("Error"), fields[1])
			return false
		}
		entry := r.elab.Top.Entry(id)
		fmt.Fprintf(out, "%s : %s\n", cyan(fields[1]), entry.TypeTerm)
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%4d  %s\n", i+1, h)
		}
	default:
		fmt.Fprintf(out, "unknown command: %s (try :help)\n", cmd)
	}
	return false
}

// evalLine parses one line as either a full declaration (`name = ...`,
// `name : T = ...`, `assume name : T`) or a bare expression, and
// elaborates it against the REPL's running context. A bare expression
// is elaborated as an anonymous declaration so that its result can be
// reported the same way a file declaration's would be.
func (r *REPL) evalLine(input string, out io.Writer) {
	src := input
	if !looksLikeDecl(input) {
		r.exprCount++
		src = fmt.Sprintf("_repl%d = %s", r.exprCount, input)
	}

	f, errs := parser.ParseFile("<repl>", src)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %v\n", red("Parse error"), e)
		}
		return
	}

	for _, d := range f.Decls {
		res := r.elab.ElaborateFile(&ast.File{Decls: []*ast.Decl{d}})[0]
		if res.Err != nil {
			printErr(out, res.Err)
			continue
		}
		r.reportDecl(out, res)
	}
}

func (r *REPL) reportDecl(out io.Writer, res elaborate.DeclResult) {
	entry := r.elab.Top.Entry(res.ID)
	fmt.Fprintf(out, "%s : %s\n", cyan(res.Name), entry.TypeTerm)
	if r.normalize || hasTag(res.Tags, "normalize") {
		if full, ok := r.elab.NormalizeTopEntry(res.ID); ok {
			fmt.Fprintf(out, "  %s %s\n", dim("normal form:"), yellow(fmt.Sprint(full)))
		}
	}
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

// looksLikeDecl distinguishes `name = ...`/`name : ...`/`assume ...`
// from a bare expression meant to be evaluated and discarded, by the
// same lookahead shape the parser itself uses for a declaration start.
func looksLikeDecl(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "assume ") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return false
	}
	return fields[1] == "=" || fields[1] == ":"
}

func printErr(out io.Writer, err error) {
	if rep, ok := errors.AsReport(err); ok {
		fmt.Fprintf(out, "%s [%s]: %s\n", red("Error"), rep.Code, rep.Message)
		return
	}
	fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
}
