package printer

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestPrintSnapshot locks down the pretty-printed form of a small program
// exercising every statement kind, the same way the teacher pins compiler
// output with go-snaps rather than a hand-maintained golden string.
func TestPrintSnapshot(t *testing.T) {
	mod := parseModule(t, `class Counter {
	int value
	int step(int by) { return by }
}
external { void log(string s) }
int total
void main() {
	Counter c = Counter()
	if total > 0 {
		log("positive")
	} else {
		total = 0
	}
	while total < 3 {
		total = total + 1
	}
}
`)
	snaps.MatchSnapshot(t, Print(mod))
}
