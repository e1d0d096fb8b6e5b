package cmd

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/cwbudde/luma/internal/jsemit"
	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/parser"
	"github.com/cwbudde/luma/internal/printer"
	"github.com/cwbudde/luma/internal/semantic"
	"github.com/cwbudde/luma/internal/token"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd exposes the compiler over HTTP: a single-page form at GET / and
// a POST /compile endpoint returning an XML document. This is a demo
// wrapper around the core compile(log, module) entry point, not part of
// the compiler proper — it uses only net/http and encoding/xml, since
// nothing else in the dependency pack speaks HTTP (the pack's only
// HTTP-adjacent dependency is grpc, a different transport model entirely).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a single-page HTML demo of the Luma compiler over HTTP",
	Long: `Serve starts an HTTP server with a one-page form for pasting Luma
source and a POST /compile endpoint that returns an XML document describing
the compile result: warnings, errors, the printed AST, the emitted
JavaScript, and the token stream.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveForm)
	mux.HandleFunc("/compile", serveCompile)

	fmt.Printf("Listening on %s\n", serveAddr)
	return http.ListenAndServe(serveAddr, mux)
}

const demoForm = `<!DOCTYPE html>
<html>
<head><title>Luma compiler demo</title></head>
<body>
<h1>Luma compiler demo</h1>
<textarea id="source" rows="20" cols="80">void main() {
}
</textarea>
<br>
<button onclick="submitSource()">Compile</button>
<pre id="result"></pre>
<script>
function submitSource() {
  fetch("/compile", {method: "POST", body: document.getElementById("source").value})
    .then(function(r) { return r.text(); })
    .then(function(text) { document.getElementById("result").textContent = text; });
}
</script>
</body>
</html>
`

func serveForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(demoForm))
}

// compileResult is the XML document returned by POST /compile.
type compileResult struct {
	XMLName    xml.Name `xml:"CompileResult"`
	Warnings   []string `xml:"Warnings>Warning"`
	Errors     []string `xml:"Errors>Error"`
	Tree       string   `xml:"Tree"`
	JavaScript string   `xml:"JavaScript"`
	Tokens     []string `xml:"Tokens>Token"`
}

func serveCompile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	source := string(body)

	result := compileResult{Tokens: tokenStrings(source)}

	l := lexer.New("<http>", source)
	p := parser.New(l)
	mod := p.ParseModule()

	if errs := p.Errors(); len(errs) > 0 {
		for _, perr := range errs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: error: %s", perr.Pos, perr.Message))
		}
		writeXML(w, result)
		return
	}

	log := semantic.NewLog()
	ok := semantic.Compile(log, mod)
	result.Warnings = log.Warnings()

	if !ok {
		result.Errors = log.Errors()
		writeXML(w, result)
		return
	}

	result.Tree = printer.Print(mod)
	result.JavaScript = jsemit.Emit(mod)
	writeXML(w, result)
}

func tokenStrings(source string) []string {
	l := lexer.New("<http>", source)
	var out []string
	for {
		tok := l.NextToken()
		out = append(out, tok.String())
		if tok.Type == token.EOF {
			break
		}
	}
	return out
}

func writeXML(w http.ResponseWriter, result compileResult) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(result); err != nil {
		http.Error(w, "failed to encode result", http.StatusInternalServerError)
	}
}
