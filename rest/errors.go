package rest

import (
	"fmt"

	"github.com/kbukum/restdata/provider"
)

// DataError reports a response that decoded but violated the data
// contract, such as a missing or unparsable total-count header on a list
// request. The decoded records are carried for callers that choose to
// degrade gracefully; the operation itself still fails.
type DataError struct {
	// Resource is the resource being listed.
	Resource string
	// Header is the header that was missing or malformed.
	Header string
	// Value is the raw header value ("" when the header was absent).
	Value string
	// Records are the records decoded from the response body.
	Records []provider.Record
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("rest: %s: missing %s header", e.Resource, e.Header)
	}
	return fmt.Sprintf("rest: %s: malformed %s header %q", e.Resource, e.Header, e.Value)
}

// BatchError reports a batched operation that failed for one or more
// items. Items completed before or alongside the failure are not rolled
// back; Results holds the outcome for every index.
type BatchError struct {
	// Op is the batched operation name (createMany, updateMany, deleteMany).
	Op string
	// Resource is the target resource.
	Resource string
	// Index is the input position of the first failing item.
	Index int
	// Err is the first failure in input order.
	Err error
	// Errs holds the per-index errors; nil entries succeeded.
	Errs []error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	failed := 0
	for _, err := range e.Errs {
		if err != nil {
			failed++
		}
	}
	return fmt.Sprintf("rest: %s %s: %d of %d items failed, first at index %d: %v",
		e.Op, e.Resource, failed, len(e.Errs), e.Index, e.Err)
}

// Unwrap returns the first failure, so errors.Is/As see through to the
// underlying httpclient error.
func (e *BatchError) Unwrap() error {
	return e.Err
}
