package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/loq"
)

const historyFile = ".loq_history"

// repl runs an interactive session until the user quits or input ends.
func (h *host) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	hist := filepath.Join(home, historyFile)
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasSuffix(line, ";") {
			if h.command(strings.TrimSuffix(line, ";")) {
				return nil
			}
			continue
		}
		e, err := loq.ParseString(line, h.env, loq.ReportWith(h.diag))
		if err != nil {
			continue
		}
		h.eval(e)
	}
}

// command executes a REPL command. The result is whether the REPL should
// exit.
func (h *host) command(cmd string) bool {
	switch strings.TrimSpace(cmd) {
	case "quit", "q":
		return true
	case "debug", "db":
		h.echo = !h.echo
		h.diag.Logf(loq.LevelInfo, "debug mode %s", onoff(h.echo))
	case "locals", "ls":
		h.locals()
	default:
		h.diag.Logf(loq.LevelWarning, "unknown command %q; try quit; debug; or locals;", cmd)
	}
	return false
}

func (h *host) locals() {
	vars := h.env.VarNames()
	funcs := h.env.FuncNames()
	if len(vars)+len(funcs) == 0 {
		h.diag.Logf(loq.LevelInfo, "nothing defined")
		return
	}
	for _, name := range vars {
		v, _ := h.env.Var(name)
		fmt.Fprintf(h.out, "  %s = %v\n", name, v)
	}
	for _, name := range funcs {
		def, _ := h.env.Func(name)
		fmt.Fprintf(h.out, "  %v\n", def)
	}
}

func onoff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
