package query

import "fmt"

// UnsupportedOperatorError reports a filter operator outside the
// recognized set (eq, ne, gte, lte, contains).
type UnsupportedOperatorError struct {
	Operator Operator
}

// Error implements the error interface.
func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("query: unsupported filter operator %q", string(e.Operator))
}
