package bytelog

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the taxonomy in spec §7. Callers use errors.Is to test
// for a category after a wrapped error has traveled up through program.go.
var (
	// ErrRuleCompilation covers every rule-registration failure: an empty
	// body, a body not starting with a bare SCAN, an EMIT target that
	// differs from the rule target, or a reference to an unbound register.
	// An EMIT that isn't the final op never gets this far: internal/parser
	// rejects it as a parse error.
	ErrRuleCompilation = errors.New("bytelog: rule compilation error")

	// ErrIterationCap is returned by the fixpoint driver when a SOLVE does
	// not converge within MaxRounds. The fact store is left partially
	// derived and must be treated as invalid by the caller.
	ErrIterationCap = errors.New("bytelog: fixpoint iteration cap exceeded")
)

// CompileError wraps ErrRuleCompilation with the offending rule's target
// relation name and a human-readable reason.
type CompileError struct {
	Target string
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("bytelog: rule for %q rejected: %s", e.Target, e.Reason)
}

func (e *CompileError) Unwrap() error {
	return ErrRuleCompilation
}

// newCompileError builds a CompileError wrapped so errors.Is(err,
// ErrRuleCompilation) succeeds.
func newCompileError(target, format string, args ...interface{}) error {
	return errors.WithStack(&CompileError{
		Target: target,
		Reason: fmt.Sprintf(format, args...),
	})
}
