package provider

import (
	"context"

	"github.com/kbukum/restdata/observability"
	"github.com/kbukum/restdata/query"
)

// WithTracing returns a Middleware that creates an OpenTelemetry span
// around each operation. Spans are named "restdata.{operation}" and tagged
// with the provider and resource names. Without an otel SDK installed the
// spans are no-ops.
func WithTracing() Middleware {
	return func(inner DataProvider) DataProvider {
		return &tracingProvider{inner: inner}
	}
}

type tracingProvider struct {
	inner DataProvider
}

func (t *tracingProvider) Name() string                         { return t.inner.Name() }
func (t *tracingProvider) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

// span wraps one operation in a span and records its failure, if any.
func (t *tracingProvider) span(ctx context.Context, op, resource string, fn func(context.Context) error) {
	ctx, s := observability.StartSpan(ctx, "restdata."+op)
	defer s.End()

	observability.SetSpanAttribute(ctx, observability.AttrProviderName, t.inner.Name())
	observability.SetSpanAttribute(ctx, observability.AttrOperationName, op)
	observability.SetSpanAttribute(ctx, observability.AttrResourceName, resource)

	if err := fn(ctx); err != nil {
		observability.SetSpanError(ctx, err)
	}
}

func (t *tracingProvider) Create(ctx context.Context, resource string, payload Record) (Record, error) {
	var rec Record
	var err error
	t.span(ctx, "create", resource, func(ctx context.Context) error {
		rec, err = t.inner.Create(ctx, resource, payload)
		return err
	})
	return rec, err
}

func (t *tracingProvider) CreateMany(ctx context.Context, resource string, payloads []Record) ([]Record, error) {
	var recs []Record
	var err error
	t.span(ctx, "createMany", resource, func(ctx context.Context) error {
		recs, err = t.inner.CreateMany(ctx, resource, payloads)
		return err
	})
	return recs, err
}

func (t *tracingProvider) GetOne(ctx context.Context, resource string, id any) (Record, error) {
	var rec Record
	var err error
	t.span(ctx, "getOne", resource, func(ctx context.Context) error {
		rec, err = t.inner.GetOne(ctx, resource, id)
		return err
	})
	return rec, err
}

func (t *tracingProvider) GetMany(ctx context.Context, resource string, ids []any) ([]Record, error) {
	var recs []Record
	var err error
	t.span(ctx, "getMany", resource, func(ctx context.Context) error {
		recs, err = t.inner.GetMany(ctx, resource, ids)
		return err
	})
	return recs, err
}

func (t *tracingProvider) GetList(ctx context.Context, resource string, q query.ListQuery) (*ListResult, error) {
	var result *ListResult
	var err error
	t.span(ctx, "getList", resource, func(ctx context.Context) error {
		result, err = t.inner.GetList(ctx, resource, q)
		if result != nil {
			observability.SetSpanAttribute(ctx, observability.AttrRecordCount, len(result.Records))
		}
		return err
	})
	return result, err
}

func (t *tracingProvider) Update(ctx context.Context, resource string, id any, payload Record) (Record, error) {
	var rec Record
	var err error
	t.span(ctx, "update", resource, func(ctx context.Context) error {
		rec, err = t.inner.Update(ctx, resource, id, payload)
		return err
	})
	return rec, err
}

func (t *tracingProvider) UpdateMany(ctx context.Context, resource string, ids []any, payload Record) ([]Record, error) {
	var recs []Record
	var err error
	t.span(ctx, "updateMany", resource, func(ctx context.Context) error {
		recs, err = t.inner.UpdateMany(ctx, resource, ids, payload)
		return err
	})
	return recs, err
}

func (t *tracingProvider) DeleteOne(ctx context.Context, resource string, id any) (Record, error) {
	var rec Record
	var err error
	t.span(ctx, "deleteOne", resource, func(ctx context.Context) error {
		rec, err = t.inner.DeleteOne(ctx, resource, id)
		return err
	})
	return rec, err
}

func (t *tracingProvider) DeleteMany(ctx context.Context, resource string, ids []any) ([]Record, error) {
	var recs []Record
	var err error
	t.span(ctx, "deleteMany", resource, func(ctx context.Context) error {
		recs, err = t.inner.DeleteMany(ctx, resource, ids)
		return err
	})
	return recs, err
}

func (t *tracingProvider) Custom(ctx context.Context, req CustomRequest) ([]byte, error) {
	var body []byte
	var err error
	t.span(ctx, "custom", req.Path, func(ctx context.Context) error {
		body, err = t.inner.Custom(ctx, req)
		return err
	})
	return body, err
}
