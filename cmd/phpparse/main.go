// Command phpparse drives the parser from the command line: parse a file,
// a set of files, or stdin, and report either a human-readable diagnostic
// listing or a JSON AST dump.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/config"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/parser"
	"github.com/gophlex/phpparser/source"
)

func main() {
	var jsonOut, silent, ascii, noColor, repl bool
	var configPath string

	app := &cli.Command{
		Name:  "phpparse",
		Usage: "tokenize and parse PHP source into a typed AST",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Aliases:     []string{"j"},
				Usage:       "print the parsed AST as JSON; diagnostics are still reported",
				Destination: &jsonOut,
			},
			&cli.BoolFlag{
				Name:        "silent",
				Aliases:     []string{"s"},
				Usage:       "suppress the diagnostic report; only the exit code reports success",
				Destination: &silent,
			},
			&cli.BoolFlag{
				Name:        "ascii",
				Usage:       "render diagnostics using plain ASCII frame characters",
				Destination: &ascii,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable ANSI color in diagnostic output",
				Destination: &noColor,
			},
			&cli.BoolFlag{
				Name:        "repl",
				Usage:       "start an interactive read-parse-report loop",
				Destination: &repl,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to a phpparse.yaml configuration file",
				Value:       ".phpparse.yaml",
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			opts := diagnostic.RenderOptions{Colored: cfg.Diagnostics.Colored && !noColor, ASCII: cfg.Diagnostics.ASCII || ascii}

			if repl {
				return runREPL(opts)
			}

			args := cmd.Args().Slice()
			if len(args) == 0 {
				return parseAndReport("input", readAll(os.Stdin), jsonOut, silent, opts)
			}

			sort.Sort(natural.StringSlice(args))
			exit := 0
			for _, path := range args {
				var data []byte
				var err error
				if path == "-" {
					data = readAll(os.Stdin)
				} else {
					data, err = os.ReadFile(path)
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "phpparse: %v\n", err)
					exit = 1
					continue
				}
				if err := parseAndReport(path, data, jsonOut, silent, opts); err != nil {
					exit = 1
				}
			}
			if exit != 0 {
				os.Exit(exit)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "phpparse: %v\n", err)
		os.Exit(1)
	}
}

func readAll(r io.Reader) []byte {
	data, _ := io.ReadAll(r)
	return data
}

// parseAndReport runs one file's worth of source through Parse, prints its
// JSON AST when jsonOut is set, and, unless silent, prints its diagnostic
// report to stderr whenever the bag is non-empty (with or without jsonOut). It
// returns a non-nil error when the bag contains at least one diagnostic, so
// the caller can track the process exit code across multiple files.
func parseAndReport(name string, data []byte, jsonOut, silent bool, opts diagnostic.RenderOptions) error {
	start := time.Now()
	prog, bag := parser.Parse(name, data)
	elapsed := time.Since(start)

	if jsonOut {
		if prog == nil {
			return fmt.Errorf("%s: parse failed before a tree could be built", name)
		}
		out, err := ast.ToJSON(prog)
		if err != nil {
			return err
		}
		fmt.Println(string(pretty.Color(pretty.Pretty(out), nil)))
	}

	if !silent && bag.HasErrors() {
		opts.Origin = name
		src := source.New(name, data)
		fmt.Fprintln(os.Stderr, diagnostic.RenderAll(bag, src, opts))
	}

	if !silent && !jsonOut {
		fmt.Fprintf(os.Stderr, "%s: %s parsed in %s, %d diagnostic(s)\n",
			name, humanize.Bytes(uint64(len(data))), elapsed.Round(time.Microsecond), bag.Count())
	}

	if bag.HasErrors() {
		return fmt.Errorf("%s: %d diagnostic(s)", name, bag.Count())
	}
	return nil
}

// runREPL reads lines with chzyer/readline, accumulating input until braces,
// parens, and brackets balance, then parses and reports the buffered
// statement. Unlike the one-shot mode this never exits non-zero; diagnostics
// are reported inline and the loop continues.
func runREPL(opts diagnostic.RenderOptions) error {
	rl, err := readline.New("php> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		prompt := "php> "
		if buf.Len() > 0 {
			prompt = " ... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		if needsMoreInput(buf.String()) {
			continue
		}

		code := buf.String()
		buf.Reset()
		if strings.TrimSpace(code) == "" {
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(code), "<?php") {
			code = "<?php\n" + code
		}
		_ = parseAndReport("repl", []byte(code), false, false, opts)
	}
}

// needsMoreInput reports whether code has unbalanced braces, parens, or
// brackets outside of a string literal, so the REPL can wait for the rest
// of a multi-line statement before attempting to parse it.
func needsMoreInput(code string) bool {
	depth := 0
	var inSingle, inDouble, escaped bool
	for _, ch := range code {
		if escaped {
			escaped = false
			continue
		}
		if inSingle || inDouble {
			switch ch {
			case '\\':
				escaped = true
			case '\'':
				if inSingle {
					inSingle = false
				}
			case '"':
				if inDouble {
					inDouble = false
				}
			}
			continue
		}
		switch ch {
		case '\'':
			inSingle = true
		case '"':
			inDouble = true
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}
	return depth > 0 || inSingle || inDouble
}
