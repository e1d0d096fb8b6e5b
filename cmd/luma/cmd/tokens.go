package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/token"
	"github.com/spf13/cobra"
)

var showPos bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a Luma file and print the resulting tokens",
	Long: `Tokenize a Luma source file and print the resulting token stream, one
token per line. Useful for debugging the lexer.

Examples:
  # Tokenize a file
  luma tokens script.luma

  # Show token positions
  luma tokens --show-pos script.luma`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(filename, string(content))

	count := 0
	for {
		tok := l.NextToken()
		printToken(tok)
		count++
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", e.Pos, e.Message)
		}
		return fmt.Errorf("lexing produced %d error(s)", len(errs))
	}

	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("%-14s %q", tok.Type, tok.Literal)
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
