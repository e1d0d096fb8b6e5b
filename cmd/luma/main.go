// Command luma is the front-end CLI for the Luma language: lexer, parser,
// and six-pass semantic analyser, with a printer and JavaScript emitter as
// back-ends.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/luma/cmd/luma/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
