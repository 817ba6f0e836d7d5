// unparse - render Ruby syntax trees as Ruby source
//
// Reads parser gem s-expressions, or YAML documents bundling a tree with
// its comments, and prints the Ruby source they describe.
// Uses manual argument parsing, like the rest of the command line tools.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kolkov/unparser"
)

// version is set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: unparse [-variant v] [-ast] [-comments] [-check] [-v] [-e sexp | -i | file ...]"
	longUsage  = `Input:
  -e sexp           render the s-expression sexp
  -i                interactive mode, one s-expression per prompt
  file ...          .yaml/.yml documents or files holding one s-expression
                    (stdin when no file is given)

Rendering:
  -variant v        target Ruby version: 1.9, 2.0 or 2.1 (default 2.1)
                    overrides the variant of YAML documents
  -ast              print the parsed tree before its rendering

Documents:
  -comments         report which node each comment is attached to
  -check            compare the output with the document's expect field

Other:
  -v                debug logging to stderr
  -h, --help        show this help message
  -version          show unparse version and exit
`
)

type options struct {
	variant  unparser.Variant
	exprs    []string
	ast      bool
	comments bool
	check    bool
	repl     bool
	log      LogFn
}

//nolint:gocyclo // CLI argument parsing is inherently branchy
func main() {
	var opts options
	verbose := false

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-variant", "--variant":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -variant")
			}
			i++
			v, err := unparser.ParseVariant(os.Args[i])
			if err != nil {
				errorExit(err)
			}
			opts.variant = v
		case "-e":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -e")
			}
			i++
			opts.exprs = append(opts.exprs, os.Args[i])
		case "-ast":
			opts.ast = true
		case "-comments":
			opts.comments = true
		case "-check":
			opts.check = true
		case "-i":
			opts.repl = true
		case "-v":
			verbose = true
		case "-h", "--help":
			fmt.Printf("unparse %s - Ruby syntax tree unparser\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("unparse version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  variants: %v\n", unparser.Variants())
			os.Exit(0)
		default:
			// Handle -variant=2.0 and -esexp forms.
			switch {
			case strings.HasPrefix(arg, "-variant="):
				v, err := unparser.ParseVariant(strings.TrimPrefix(arg, "-variant="))
				if err != nil {
					errorExit(err)
				}
				opts.variant = v
			case strings.HasPrefix(arg, "-e"):
				opts.exprs = append(opts.exprs, arg[2:])
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}
	files := os.Args[i:]
	opts.log = NewLog("unparse", verbose)

	if opts.repl {
		os.Exit(repl(&opts))
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	failed := false
	for _, expr := range opts.exprs {
		opts.log("rendering -e argument (%d bytes)", len(expr))
		if err := renderSexp(stdout, expr, &opts); err != nil {
			errorExit(err)
		}
	}

	if len(files) == 0 && len(opts.exprs) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			errorExitf(shortUsage)
		}
		opts.log("reading s-expression from stdin")
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			errorExitf("cannot read stdin: %v", err)
		}
		if err := renderSexp(stdout, string(data), &opts); err != nil {
			errorExit(err)
		}
	}

	for _, path := range files {
		ok, err := renderFile(stdout, path, &opts)
		if err != nil {
			stdout.Flush()
			errorExit(err)
		}
		if !ok {
			failed = true
		}
	}

	if failed {
		stdout.Flush()
		os.Exit(1)
	}
}

func renderSexp(w io.Writer, sexp string, opts *options) error {
	root, err := unparser.Parse(sexp)
	if err != nil {
		return err
	}
	printTree(w, root, opts)
	src, err := unparser.Unparse(root, nil, &unparser.Config{Variant: opts.variant})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, src)
	return err
}

// printTree writes the parsed tree as `#` lines when -ast is set.
func printTree(w io.Writer, root *unparser.Node, opts *options) {
	if !opts.ast {
		return
	}
	for _, line := range strings.Split(unparser.Sexp(root), "\n") {
		fmt.Fprintf(w, "# %s\n", line)
	}
}

// renderFile renders one input file. It reports false when -check finds
// a difference.
func renderFile(w io.Writer, path string, opts *options) (bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		opts.log("reading s-expression from %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("cannot read %s: %w", path, err)
		}
		return true, renderSexp(w, string(data), opts)
	}

	doc, err := unparser.LoadDocument(path)
	if err != nil {
		return false, err
	}
	if opts.variant != "" {
		doc.Variant = opts.variant
	}
	opts.log("%s: variant %q, %d comments", path, doc.Variant, len(doc.Comments))

	if opts.ast {
		root, _, err := doc.Tree()
		if err != nil {
			return false, err
		}
		printTree(w, root, opts)
	}
	src, err := doc.Unparse()
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(w, src)

	if opts.comments {
		if err := reportComments(w, doc); err != nil {
			return false, err
		}
	}
	if opts.check && doc.Expect != src {
		fmt.Fprintf(os.Stderr, "unparse: %s: output differs from expect:\n%s\n", path, doc.Expect)
		return false, nil
	}
	return true, nil
}

// reportComments prints one line per comment naming the node it
// documents.
func reportComments(w io.Writer, doc *unparser.Document) error {
	root, cs, err := doc.Tree()
	if err != nil {
		return err
	}
	assocs := unparser.Associate(root, cs)
	unplaced := len(cs) - len(assocs)
	for _, a := range assocs {
		where := "before"
		if a.Trailing {
			where = "after"
		}
		fmt.Fprintf(w, "# %s %s %s: %s\n", where, a.Node.Kind, a.Node.Range(), firstLine(a.Comment.Text))
	}
	if unplaced > 0 {
		fmt.Fprintf(w, "# %d comment(s) not attached to any node\n", unplaced)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "unparse: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "unparse: %v\n", err)
	os.Exit(1)
}
