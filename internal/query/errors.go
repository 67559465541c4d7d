package query

import (
	"errors"
	"fmt"
)

// ErrNotNarrowed signals a query refresh with no active narrowing.
var ErrNotNarrowed = errors.New("no search active")

// ErrInvalidContext signals a command issued outside an open view.
var ErrInvalidContext = errors.New("no note view open")

// NoMatchesError reports a narrowing term that matched nothing. The
// failed term is surfaced verbatim and the prior view stays untouched.
type NoMatchesError struct {
	Term string
}

func (e *NoMatchesError) Error() string {
	return fmt.Sprintf("no matches for %q", e.Term)
}

// IsNoMatches reports whether err is a NoMatchesError.
func IsNoMatches(err error) bool {
	var nm *NoMatchesError
	return errors.As(err, &nm)
}
