package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kbukum/restdata/query"
)

// Record is a single item within a resource. Field names and value types
// are backend-defined; records decode as loose JSON objects.
type Record map[string]any

// ID returns the record's identifier, or nil when absent.
func (r Record) ID() any {
	return r["id"]
}

// FormatID renders a record identifier (string or integer) for use in a
// URL path or query value.
func FormatID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a fraction so ids survive a decode/encode round trip.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ListResult is the normalized outcome of a list operation.
type ListResult struct {
	// Records holds the page of records, in server order.
	Records []Record
	// Total is the total number of records matching the query across all
	// pages, from the backend's count signal.
	Total int
}

// CustomRequest describes an escape-hatch request outside the standard
// resource operations.
type CustomRequest struct {
	// Method is the HTTP verb. Unrecognized or empty methods dispatch as GET.
	Method string
	// Path is the target path, or a full URL.
	Path string
	// Query are extra query parameters, merged with the encoded filters
	// and sort.
	Query url.Values
	// Filters are encoded with the standard filter rules when present.
	Filters []query.Filter
	// Sort is encoded with the standard sort rules when present. Unlike
	// GetList, an absent sort adds nothing to the query.
	Sort query.Sort
	// Payload is the request body for body-carrying verbs. DELETE ignores it.
	Payload any
	// Headers are merged over the transport's default headers for this
	// request only.
	Headers map[string]string
}

// Provider is the base interface all providers implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// DataProvider is the capability contract for resource-oriented data
// access. Implementations must preserve input-order correspondence in the
// results of the batched operations and surface failures as typed errors;
// no operation returns partial data silently.
type DataProvider interface {
	Provider

	// Create stores a new record and returns the created record.
	Create(ctx context.Context, resource string, payload Record) (Record, error)
	// CreateMany creates one record per payload. Results are positionally
	// matched to payloads.
	CreateMany(ctx context.Context, resource string, payloads []Record) ([]Record, error)
	// GetOne fetches a single record by id.
	GetOne(ctx context.Context, resource string, id any) (Record, error)
	// GetMany fetches the records whose id is in ids, in one batched
	// request. Result order is server-defined.
	GetMany(ctx context.Context, resource string, ids []any) ([]Record, error)
	// GetList fetches a page of records plus the total count.
	GetList(ctx context.Context, resource string, q query.ListQuery) (*ListResult, error)
	// Update applies a partial update to a record and returns the result.
	Update(ctx context.Context, resource string, id any, payload Record) (Record, error)
	// UpdateMany applies the same partial update to each id. Results are
	// positionally matched to ids.
	UpdateMany(ctx context.Context, resource string, ids []any, payload Record) ([]Record, error)
	// DeleteOne removes a record and returns the deleted record or an
	// empty acknowledgement.
	DeleteOne(ctx context.Context, resource string, id any) (Record, error)
	// DeleteMany removes one record per id. Results are positionally
	// matched to ids.
	DeleteMany(ctx context.Context, resource string, ids []any) ([]Record, error)
	// Custom dispatches an arbitrary request and returns the raw body.
	Custom(ctx context.Context, req CustomRequest) ([]byte, error)
}
