// Package semantic implements Luma's six-pass semantic pipeline: structural
// check, symbol definition, symbol typing, type computation, flow
// validation, and default initialisation, plus an optional rename pass.
package semantic

import (
	"fmt"

	"github.com/cwbudde/luma/internal/token"
)

// DiagnosticKind distinguishes an error, which halts the pipeline between
// passes, from a warning, which does not.
type DiagnosticKind int

const (
	DiagError DiagnosticKind = iota
	DiagWarning
)

func (k DiagnosticKind) String() string {
	if k == DiagWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one logged error or warning, positioned in source.
type Diagnostic struct {
	Kind    DiagnosticKind
	Pos     token.Position
	Message string
}

// String renders a diagnostic as "file:line:column: kind: message", the
// format every pass's output uses.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
}

// Log accumulates diagnostics in the order passes report them. Disabled
// suppresses Errorf/Warnf without affecting already-logged diagnostics; the
// compute-types pass sets it while speculatively inspecting a callee's
// shape, so a failed trial lookup doesn't leak a spurious message into the
// real output (see Analyzer.calleeSymbol in call.go).
type Log struct {
	Disabled    bool
	diagnostics []Diagnostic
}

// NewLog returns an empty Log.
func NewLog() *Log { return &Log{} }

// Errorf records an error diagnostic, unless the log is disabled.
func (l *Log) Errorf(pos token.Position, format string, args ...interface{}) {
	if l.Disabled {
		return
	}
	l.diagnostics = append(l.diagnostics, Diagnostic{Kind: DiagError, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning diagnostic, unless the log is disabled.
func (l *Log) Warnf(pos token.Position, format string, args ...interface{}) {
	if l.Disabled {
		return
	}
	l.diagnostics = append(l.diagnostics, Diagnostic{Kind: DiagWarning, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns every diagnostic logged so far, in report order.
func (l *Log) Diagnostics() []Diagnostic { return l.diagnostics }

// Errors returns the formatted text of every error diagnostic, in report
// order — the §6 "Errors" list of a compile result.
func (l *Log) Errors() []string { return l.filter(DiagError) }

// Warnings returns the formatted text of every warning diagnostic, in
// report order — the §6 "Warnings" list of a compile result.
func (l *Log) Warnings() []string { return l.filter(DiagWarning) }

func (l *Log) filter(kind DiagnosticKind) []string {
	var out []string
	for _, d := range l.diagnostics {
		if d.Kind == kind {
			out = append(out, d.String())
		}
	}
	return out
}

// ErrorCount returns the number of error diagnostics logged so far. Each
// pass wrapper in pipeline.go snapshots this before running and compares
// after, so a pass halts the pipeline exactly when it adds a new error.
func (l *Log) ErrorCount() int {
	n := 0
	for _, d := range l.diagnostics {
		if d.Kind == DiagError {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error has been logged.
func (l *Log) HasErrors() bool { return l.ErrorCount() > 0 }
