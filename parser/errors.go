package parser

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMalformedDeclaration     = errors.New("malformed declaration")
	ErrMissingComment           = errors.New("missing doxygen comment")
	ErrMissingCallingConvention = errors.New("missing calling convention")
	ErrMissingFunctionName      = errors.New("missing function name")
	ErrMissingVersion           = errors.New("missing @since version")
	ErrMissingGroup             = errors.New("missing @ingroup group")
	ErrMissingFileVersion       = errors.New("missing VERSION_MAJOR/VERSION_MINOR/VERSION_REVISION definitions")
	ErrDuplicateFunctionName    = errors.New("duplicate function name")
	ErrCountMismatch            = errors.New("calling convention count does not match parsed functions")
)

// DeclarationError attributes a failure to a single declaration.
// Function is empty when the failure happened before the name was known.
type DeclarationError struct {
	Function string
	Line     int
	Err      error
}

func (e *DeclarationError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("declaration at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("function %s (line %d): %v", e.Function, e.Line, e.Err)
}

func (e *DeclarationError) Unwrap() error { return e.Err }

// CountMismatchError reports that the calling convention sentinel occurs more
// (or fewer) times than there are parsed functions.
type CountMismatchError struct {
	Sentinels int
	Parsed    int
	Missing   []string
}

func (e *CountMismatchError) Error() string {
	msg := fmt.Sprintf("%v: %d != %d", ErrCountMismatch, e.Sentinels, e.Parsed)
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf(" (not parsed: %s)", strings.Join(e.Missing, ", "))
	}
	return msg
}

func (e *CountMismatchError) Unwrap() error { return ErrCountMismatch }
