package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/unparser"
	"github.com/kolkov/unparser/internal/parser"
)

const (
	historyFile = ".unparse_history"
	promptMain  = "sexp> "
	promptCont  = "....> "
)

// repl reads s-expressions interactively and prints their rendering.
// Input spanning several lines is collected until the expression is
// complete. `:variant 2.0` switches the target variant, `:quit` exits.
func repl(opts *options) int {
	fmt.Printf("unparse %s, target Ruby %s. Type :quit to exit.\n", version, variantName(opts.variant))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readExpression(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(code, ":") {
			if quit := command(opts, code); quit {
				return 0
			}
			continue
		}

		opts.log("rendering %d bytes", len(code))
		src, err := unparser.UnparseString(code, &unparser.Config{Variant: opts.variant})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(src)
	}
}

func command(opts *options, code string) (quit bool) {
	fields := strings.Fields(code)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":variant":
		if len(fields) != 2 {
			fmt.Printf("target Ruby %s\n", variantName(opts.variant))
			return false
		}
		v, err := unparser.ParseVariant(fields[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		opts.variant = v
	default:
		fmt.Println("unknown command. Use :variant [1.9|2.0|2.1] or :quit.")
	}
	return false
}

// readExpression prompts until the collected lines form a complete
// s-expression or a definite syntax error.
func readExpression(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src stops in the middle of an expression.
func incomplete(src string) bool {
	_, err := parser.Parse(src)
	var pe *parser.ParseError
	return errors.As(err, &pe) && pe.Got == "end of file"
}

func variantName(v unparser.Variant) unparser.Variant {
	if v == "" {
		return unparser.DefaultVariant
	}
	return v
}
