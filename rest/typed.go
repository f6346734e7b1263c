package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/kbukum/restdata/httpclient"
	"github.com/kbukum/restdata/query"
)

// ListOf is a typed list result.
type ListOf[T any] struct {
	// Records holds the page of records, in server order.
	Records []T
	// Total is the total number of matching records across all pages.
	Total int
}

// GetOneAs fetches a single record and decodes it into T.
func GetOneAs[T any](ctx context.Context, p *Provider, resource string, id any) (T, error) {
	var out T
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   recordPath(resource, id),
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("rest: decode record: %w", err)
	}
	return out, nil
}

// GetListAs fetches a page of records decoded into T plus the total count.
// Total-count handling matches Provider.GetList, except the typed variant
// cannot carry partial records in the error.
func GetListAs[T any](ctx context.Context, p *Provider, resource string, q query.ListQuery) (*ListOf[T], error) {
	values, err := q.Values()
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   resourcePath(resource),
		Query:  values,
	})
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(resp.Body, &records); err != nil {
		return nil, fmt.Errorf("rest: decode records: %w", err)
	}

	header := textproto.CanonicalMIMEHeaderKey(p.config.TotalCountHeader)
	raw := resp.Header(header)
	total, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if raw == "" || convErr != nil || total < 0 {
		return nil, &DataError{Resource: resource, Header: header, Value: raw}
	}

	return &ListOf[T]{Records: records, Total: total}, nil
}

// CreateAs stores a new record from a typed payload and decodes the
// created record into T.
func CreateAs[T any](ctx context.Context, p *Provider, resource string, payload any) (T, error) {
	var out T
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   resourcePath(resource),
		Body:   payload,
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("rest: decode record: %w", err)
	}
	return out, nil
}
