package semantic

import "github.com/cwbudde/luma/internal/ast"

// pass is one stage of the pipeline: given the shared log and the module
// being analysed, it reports whether it completed without adding an error.
type pass func(*Log, *ast.Module) bool

// passes lists the six mandatory passes in their fixed order. The optional
// rename pass (RenameSymbols) is not part of this list — it runs after
// Compile succeeds, driven by the backend that needs it, not by the
// pipeline itself.
var passes = []pass{
	structuralCheck,
	defineSymbols,
	computeSymbolTypes,
	computeTypes,
	flowValidate,
	defaultInitialize,
}

// internalError marks a panic raised by a pass encountering state the
// grammar is supposed to rule out (a nil node where one is guaranteed, an
// unreachable type-switch arm). It is never used for ordinary semantic
// errors, which always go through Log.Errorf/Log.Warnf instead.
type internalError struct {
	pass string
	err  error
}

func (e *internalError) Error() string { return e.pass + ": " + e.err.Error() }

// Compile runs the six mandatory passes over mod in order, halting after
// the first pass that logs a new error — downstream passes assume their
// predecessors left the tree in a consistent state, and a halted pipeline's
// log still holds everything reported up to that point. It reports whether
// every pass completed without adding an error.
//
// A pass that panics with an internalError is treated as an aborted pass:
// the panic is recovered, logged as an error against the module's root
// position, and Compile returns false rather than propagating the panic.
func Compile(log *Log, mod *ast.Module) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ierr, isInternal := r.(*internalError)
			if !isInternal {
				panic(r)
			}
			log.Errorf(mod.Pos(), "internal error in %s: %s", ierr.pass, ierr.err)
			ok = false
		}
	}()

	for _, p := range passes {
		if !p(log, mod) {
			return false
		}
	}
	return true
}
