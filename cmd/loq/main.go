package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/loq"
)

func main() {
	log.SetFlags(0)
	var (
		inname      string
		with        [][2]string
		echo, debug bool
		nocolor     bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=expr", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file of statements, one per line (- for stdin)")
	flag.Func("given", "name=expr variable definition (any number of times)", addwith)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&debug, "debug", false, "start the REPL in debug mode")
	flag.BoolVar(&nocolor, "nocolor", false, "disable colored output")
	flag.Parse()
	if nocolor {
		color.NoColor = true
	}

	env := loq.NewEnv()
	for _, d := range with {
		if _, err := env.EvalString(d[0] + "=" + d[1]); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}

	diag := loq.NewDiagnoster(os.Stderr)
	diag.Color = !nocolor
	h := &host{env: env, diag: diag, out: os.Stdout, echo: echo || debug}

	if inname != "" {
		name, src, err := readfile(inname)
		if err != nil {
			log.Fatal(err)
		}
		if err := h.run(name, src); err != nil {
			os.Exit(1)
		}
	}
	for i, arg := range flag.Args() {
		if err := h.run(fmt.Sprintf("arg%d", i+1), arg); err != nil {
			os.Exit(1)
		}
	}
	if inname == "" && flag.NArg() == 0 {
		if err := h.repl(); err != nil {
			log.Fatal(err)
		}
	}
}

// host evaluates statements against one environment.
type host struct {
	env  *loq.Env
	diag *loq.Diagnoster
	out  io.Writer
	echo bool
}

// run parses and evaluates every statement in src, stopping at the first
// error. The error has already been reported.
func (h *host) run(name, src string) error {
	p := loq.NewParser(src, loq.ReportWith(h.diag), loq.SourceName(name))
	for {
		e, err := p.Parse(h.env)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		h.eval(e)
	}
}

// eval evaluates a parsed statement and prints the result.
func (h *host) eval(e loq.Expr) {
	if h.echo {
		fmt.Fprintln(h.out, loq.Tree(e))
	}
	r := h.env.Eval(e)
	fmt.Fprintln(h.out, "  =>", result(r))
}

var resultColor = color.New(color.FgGreen)

func result(r loq.Expr) string {
	s := loq.Describe(r)
	i := strings.Index(s, ":")
	return resultColor.Sprint(s[:i+1]) + s[i+1:]
}

// readfile reads a statement file. Carriage returns are removed so that files
// with CRLF line endings parse the same as others.
func readfile(name string) (string, string, error) {
	var b []byte
	var err error
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
		name = "stdin"
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", "", err
	}
	return name, strings.ReplaceAll(string(b), "\r", ""), nil
}
