// Package recovery turns panics into a fatal exit at the top of main, or into
// an error for work that must not take the whole batch down.
package recovery

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
)

// ErrPanic wraps a panic recovered by Catch
var ErrPanic = errors.New("panic")

// PanicError carries the recovered value and the stack of the panicking goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error { return ErrPanic }

// HandlePanic should be deferred at the top of main().
// It prints the panic and stack to stderr and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
}

// Catch stores a recovered panic in *err as a *PanicError. It must be
// deferred directly, with err pointing at the function's named result.
//
//	func decodeOne(path string) (rep *report.Report, err error) {
//		defer recovery.Catch(&err)
//		...
//	}
func Catch(err *error) {
	if r := recover(); r != nil {
		pe := &PanicError{Value: r, Stack: debug.Stack()}
		if err != nil {
			*err = pe
		}
	}
}
