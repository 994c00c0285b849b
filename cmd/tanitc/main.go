// Command tanitc drives the front end end to end: lex, parse, analyze, and
// print whatever diagnostics came out the other side. There is no code
// generator in this repo, so a clean run just exits 0 without producing
// anything.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/TheIcefield/tanit-lang-sub000/internal/analyzer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/config"
	"github.com/TheIcefield/tanit-lang-sub000/internal/lexer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/parser"
	"github.com/TheIcefield/tanit-lang-sub000/internal/session"
)

const configFileName = "tanit.yaml"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tanitc <source-file>...")
		os.Exit(2)
	}

	opts, err := loadOptions(configFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanitc: %s\n", err)
		os.Exit(2)
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	hadErrors := false
	for _, path := range os.Args[1:] {
		if !compile(path, opts, color) {
			hadErrors = true
		}
	}

	if hadErrors {
		os.Exit(1)
	}
}

// loadOptions reads configFileName from the working directory, falling
// back to config.Default when it is absent; every field the file omits
// takes the default.
func loadOptions(path string) (config.Options, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// compile runs one source file through the pipeline, printing its
// diagnostics and reporting whether the file compiled clean.
func compile(path string, opts config.Options, color bool) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanitc: %s\n", err)
		return false
	}

	sess := session.Begin()
	fmt.Fprintf(os.Stderr, "tanitc: compiling %s [session %s]\n", path, sess)

	lex := lexer.New(string(src))
	stream := lexer.NewStream(lex)
	prog, parseMsgs := parser.New(stream).ParseProgram()

	msgs := append(message.Messages{}, parseMsgs...)

	if !parseMsgs.HasErrors() {
		analyzeMsgs := analyzer.WithOptions(opts).Analyze(prog)
		msgs = append(msgs, analyzeMsgs...)
	}

	for _, m := range msgs {
		printMessage(path, m, color)
	}

	return !msgs.HasErrors()
}

func printMessage(path string, m message.Message, color bool) {
	severity := m.Severity.String()
	if !color {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", path, m.Location.Row, m.Location.Col, severity, m.Text)
		return
	}

	code := "31"
	if m.Severity == message.SeverityWarning {
		code = "33"
	}
	fmt.Fprintf(os.Stderr, "%s:%d:%d: \x1b[%sm%s\x1b[0m: %s\n", path, m.Location.Row, m.Location.Col, code, severity, m.Text)
}
