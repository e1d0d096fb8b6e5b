// Package cmd implements the luma command-line tool: a cobra command tree
// mirroring the teacher's cmd/dwscript/cmd shape, scaled down to what a
// front-end-only compiler needs (no `run` subcommand — there is no VM).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "luma",
	Short: "Luma compiler front-end",
	Long: `luma is the front-end of the Luma language: a lexer, a Pratt parser,
and a six-pass semantic analyser for a small statically-typed, class-based,
imperative language with overloading, nullable types, and a JavaScript
back-end.

It lexes, parses, and type-checks a Luma program, and can print the
decorated AST or emit the equivalent JavaScript. It does not execute Luma
programs — there is no interpreter or VM here, only the front-end.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
