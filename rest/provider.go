package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/kbukum/restdata/httpclient"
	"github.com/kbukum/restdata/logger"
	"github.com/kbukum/restdata/provider"
	"github.com/kbukum/restdata/query"
)

// Provider is the REST implementation of provider.DataProvider.
// It is safe for concurrent use.
type Provider struct {
	config Config
	http   *httpclient.Adapter
	log    *logger.Logger
}

// compile-time assertion
var _ provider.DataProvider = (*Provider)(nil)

// Option configures a Provider beyond its Config.
type Option func(*Provider)

// WithLogger attaches a logger to the provider and its transport.
func WithLogger(log *logger.Logger) Option {
	return func(p *Provider) {
		p.log = log.WithComponent("rest")
	}
}

// New creates a REST data provider. JSON content negotiation headers are
// applied unless the config already sets them.
func New(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(cfg.HTTP.Headers)+2)
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}
	cfg.HTTP.Headers = headers

	p := &Provider{config: cfg, log: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}

	adapter, err := httpclient.New(cfg.HTTP, httpclient.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	p.http = adapter

	return p, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.config.Name
}

// IsAvailable reports whether the underlying transport accepts requests.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.http.IsAvailable(ctx)
}

// Close releases transport resources.
func (p *Provider) Close(ctx context.Context) error {
	return p.http.Close(ctx)
}

// Create stores a new record.
func (p *Provider) Create(ctx context.Context, resource string, payload provider.Record) (provider.Record, error) {
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   resourcePath(resource),
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp.Body)
}

// CreateMany creates one record per payload. Requests fan out concurrently;
// results are positionally matched to payloads. On partial failure the
// returned error is a *BatchError and completed creates are not rolled back.
func (p *Provider) CreateMany(ctx context.Context, resource string, payloads []provider.Record) ([]provider.Record, error) {
	records, errs := fanOut(ctx, len(payloads), p.config.BatchConcurrency, func(ctx context.Context, i int) (provider.Record, error) {
		return p.Create(ctx, resource, payloads[i])
	})
	if err := batchError("createMany", resource, errs); err != nil {
		return records, err
	}
	return records, nil
}

// GetOne fetches a single record by id.
func (p *Provider) GetOne(ctx context.Context, resource string, id any) (provider.Record, error) {
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   recordPath(resource, id),
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp.Body)
}

// GetMany fetches the records whose id is in ids with a single request,
// using a repeated-key membership filter (id=1&id=2&...). Result order is
// server-defined. Empty ids yield an empty result without a request.
func (p *Provider) GetMany(ctx context.Context, resource string, ids []any) ([]provider.Record, error) {
	// Membership in the empty set is empty; a request with no id params
	// would fetch the whole collection instead.
	if len(ids) == 0 {
		return []provider.Record{}, nil
	}

	values := url.Values{}
	for _, id := range ids {
		values.Add("id", provider.FormatID(id))
	}
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   resourcePath(resource),
		Query:  values,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(resp.Body)
}

// GetList fetches a page of records plus the total count from the
// configured total-count header. A missing or unparsable header fails with
// *DataError carrying the decoded records; it is never treated as zero.
func (p *Provider) GetList(ctx context.Context, resource string, q query.ListQuery) (*provider.ListResult, error) {
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

	records, err := decodeRecords(resp.Body)
	if err != nil {
		return nil, err
	}

	header := textproto.CanonicalMIMEHeaderKey(p.config.TotalCountHeader)
	raw := resp.Header(header)
	total, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if raw == "" || convErr != nil || total < 0 {
		return nil, &DataError{
			Resource: resource,
			Header:   header,
			Value:    raw,
			Records:  records,
		}
	}

	return &provider.ListResult{Records: records, Total: total}, nil
}

// Update applies a partial update to a record.
func (p *Provider) Update(ctx context.Context, resource string, id any, payload provider.Record) (provider.Record, error) {
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Path:   recordPath(resource, id),
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp.Body)
}

// UpdateMany applies the same partial update to each id. Requests fan out
// concurrently; results are positionally matched to ids. Partial failure
// semantics match CreateMany.
func (p *Provider) UpdateMany(ctx context.Context, resource string, ids []any, payload provider.Record) ([]provider.Record, error) {
	records, errs := fanOut(ctx, len(ids), p.config.BatchConcurrency, func(ctx context.Context, i int) (provider.Record, error) {
		return p.Update(ctx, resource, ids[i], payload)
	})
	if err := batchError("updateMany", resource, errs); err != nil {
		return records, err
	}
	return records, nil
}

// DeleteOne removes a record. Backends that return the deleted record have
// it decoded; an empty response body yields an empty acknowledgement record.
func (p *Provider) DeleteOne(ctx context.Context, resource string, id any) (provider.Record, error) {
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   recordPath(resource, id),
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp.Body)
}

// DeleteMany removes one record per id. Requests fan out concurrently;
// results are positionally matched to ids. Partial failure semantics match
// CreateMany.
func (p *Provider) DeleteMany(ctx context.Context, resource string, ids []any) ([]provider.Record, error) {
	records, errs := fanOut(ctx, len(ids), p.config.BatchConcurrency, func(ctx context.Context, i int) (provider.Record, error) {
		return p.DeleteOne(ctx, resource, ids[i])
	})
	if err := batchError("deleteMany", resource, errs); err != nil {
		return records, err
	}
	return records, nil
}

// Custom dispatches an arbitrary request. Filters and sort encode with the
// standard query rules when present; unlike GetList, an absent sort adds no
// default. Unrecognized verbs dispatch as GET; DELETE ignores the payload.
func (p *Provider) Custom(ctx context.Context, req provider.CustomRequest) ([]byte, error) {
	values := url.Values{}
	for k, vs := range req.Query {
		values[k] = vs
	}
	filterValues, err := query.EncodeFilters(req.Filters)
	if err != nil {
		return nil, err
	}
	for k, vs := range filterValues {
		values[k] = vs
	}
	if req.Sort != nil {
		for k, vs := range query.EncodeSort(req.Sort) {
			values[k] = vs
		}
	}

	method := strings.ToUpper(req.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		method = http.MethodGet
	}

	var body any
	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		body = req.Payload
	}

	resp, err := p.http.Do(ctx, httpclient.Request{
		Method:  method,
		Path:    req.Path,
		Query:   values,
		Headers: req.Headers,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// resourcePath builds the collection path for a resource.
func resourcePath(resource string) string {
	return "/" + url.PathEscape(resource)
}

// recordPath builds the path for a single record.
func recordPath(resource string, id any) string {
	return "/" + url.PathEscape(resource) + "/" + url.PathEscape(provider.FormatID(id))
}

// decodeRecord decodes a single JSON object body.
func decodeRecord(body []byte) (provider.Record, error) {
	if len(body) == 0 {
		return provider.Record{}, nil
	}
	var rec provider.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("rest: decode record: %w", err)
	}
	return rec, nil
}

// decodeRecords decodes a JSON array body.
func decodeRecords(body []byte) ([]provider.Record, error) {
	if len(body) == 0 {
		return []provider.Record{}, nil
	}
	var recs []provider.Record
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("rest: decode records: %w", err)
	}
	return recs, nil
}
