// Command impalac is the Impala front-end's CLI: lex, parse, resolve,
// and type-check one or more source files, optionally lowering the
// result to Thorin-style CPS IR for inspection.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/impala-lang/impala/check"
	"github.com/impala-lang/impala/diag"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/ir"
	"github.com/impala-lang/impala/parser"
	"github.com/impala-lang/impala/resolve"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadConfig("impalac.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "impalac: reading impalac.yaml:", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(os.Args[2:], cfg))
	case "lower":
		os.Exit(runLower(os.Args[2:], cfg))
	case "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "impalac: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s check <file>...\n       %s lower <file>\n", os.Args[0], os.Args[0])
}

// runCheck lexes, parses, resolves, and type-checks every file,
// printing a rendered diag.Batch and returning the process's exit
// code: 0 if every file checked clean, 1 otherwise.
func runCheck(args []string, cfg Config) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	target := fs.String("target", cfg.Target, "target triple for the Thorin emitter")
	fs.Parse(args)
	_ = target // threaded through for `lower`; `check` alone never emits code

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "impalac check: no input files")
		return 1
	}

	ok := true
	for _, path := range fs.Args() {
		if !checkFile(path) {
			ok = false
		}
	}
	if ok {
		return 0
	}
	return 1
}

func checkFile(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "impalac:", err)
		return false
	}
	f := &source.File{Name: path, Content: string(content)}
	batch := diag.NewBatch()

	p := parser.New(f)
	prog := p.ParseProgram()
	for _, e := range p.Errors() {
		batch.Add(e.Diagnostic())
	}
	if batch.HasErrors() {
		diag.Render(os.Stderr, batch)
		return false
	}

	res := resolve.ResolveProgram(prog)
	for _, e := range res.Errors {
		batch.Add(e.Diagnostic())
	}
	if batch.HasErrors() {
		diag.Render(os.Stderr, batch)
		return false
	}

	_, errs := check.CheckProgram(prog, res)
	for _, e := range errs {
		batch.Add(e.Diagnostic())
	}
	if batch.HasErrors() {
		diag.Render(os.Stderr, batch)
		return false
	}
	return true
}

// runLower checks exactly one file and, if it checks cleanly, lowers
// it to Thorin IR and prints the result to stdout.
func runLower(args []string, cfg Config) int {
	fs := flag.NewFlagSet("lower", flag.ExitOnError)
	fs.String("target", cfg.Target, "target triple for the Thorin emitter")
	optimize := fs.Bool("optimize", cfg.Optimize, "run Thorin-side optimization passes")
	fs.Parse(args)
	_ = optimize // no optimization passes exist yet; accepted for config-file compatibility

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "impalac lower: exactly one input file")
		return 1
	}
	path := fs.Arg(0)

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "impalac:", err)
		return 1
	}
	f := &source.File{Name: path, Content: string(content)}
	batch := diag.NewBatch()

	p := parser.New(f)
	prog := p.ParseProgram()
	for _, e := range p.Errors() {
		batch.Add(e.Diagnostic())
	}
	res := resolve.ResolveProgram(prog)
	for _, e := range res.Errors {
		batch.Add(e.Diagnostic())
	}
	table, errs := check.CheckProgram(prog, res)
	for _, e := range errs {
		batch.Add(e.Diagnostic())
	}
	if batch.HasErrors() {
		diag.Render(os.Stderr, batch)
		return 1
	}

	world := ir.Lower(prog, table)
	if dead := world.Validate(); len(dead) > 0 {
		fmt.Fprintf(os.Stderr, "impalac: %d unreachable continuation(s): %v\n", len(dead), dead)
	}
	fmt.Println(world.String())
	return 0
}
