package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/luma/internal/jsemit"
	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/parser"
	"github.com/cwbudde/luma/internal/printer"
	"github.com/cwbudde/luma/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	printAST    bool
	emitJS      bool
	renameForJS bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Lex, parse, and type-check a Luma file",
	Long: `Compile lexes, parses, and runs the six-pass semantic analyser over a
Luma source file. It reports diagnostics and, on success, can print the
decorated AST or emit the equivalent JavaScript.

Examples:
  # Just type-check and report diagnostics
  luma compile script.luma

  # Print the decorated AST
  luma compile --print-ast script.luma

  # Emit JavaScript
  luma compile --emit-js script.luma`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVar(&printAST, "print-ast", false, "print the decorated AST instead of a success message")
	compileCmd.Flags().BoolVar(&emitJS, "emit-js", false, "emit the equivalent JavaScript instead of a success message")
	compileCmd.Flags().BoolVar(&renameForJS, "rename", false, "run the optional rename pass before emitting JavaScript")
}

// jsReserved lists the identifiers the JavaScript emitter can't bind to a
// Luma name without risking a collision with a host-provided global.
var jsReserved = map[string]bool{
	"class": true, "function": true, "let": true, "const": true, "var": true,
	"return": true, "if": true, "else": true, "while": true, "new": true,
	"this": true, "null": true, "true": true, "false": true, "static": true,
	"console": true, "window": true, "globalThis": true,
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	l := lexer.New(filename, input)
	p := parser.New(l)
	mod := p.ParseModule()

	if errs := p.Errors(); len(errs) > 0 {
		for _, perr := range errs {
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", perr.Pos, perr.Message)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	log := semantic.NewLog()
	ok := semantic.Compile(log, mod)

	for _, w := range log.Warnings() {
		fmt.Fprintln(os.Stderr, w)
	}
	if !ok {
		for _, e := range log.Errors() {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("semantic analysis failed with %d error(s)", log.ErrorCount())
	}

	if renameForJS {
		semantic.RenameSymbols(mod, semantic.RenameOptions{Reserved: jsReserved, RenameOverloads: true})
	}

	switch {
	case printAST:
		fmt.Print(printer.Print(mod))
	case emitJS:
		fmt.Print(jsemit.Emit(mod))
	default:
		fmt.Printf("%s: OK\n", filename)
	}

	return nil
}
