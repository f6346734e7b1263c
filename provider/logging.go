package provider

import (
	"context"
	"time"

	"github.com/kbukum/restdata/logger"
	"github.com/kbukum/restdata/query"
)

// WithLogging returns a Middleware that logs every operation with its
// name, resource, duration, and outcome.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner DataProvider) DataProvider {
		return &loggingProvider{inner: inner, log: log.WithComponent("provider")}
	}
}

type loggingProvider struct {
	inner DataProvider
	log   *logger.Logger
}

func (l *loggingProvider) Name() string                         { return l.inner.Name() }
func (l *loggingProvider) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

// observe writes one log line per operation.
func (l *loggingProvider) observe(op, resource string, start time.Time, err error) {
	fields := logger.Fields(
		logger.FieldOperation, op,
		logger.FieldResource, resource,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.Error("operation failed", fields)
		return
	}
	l.log.Debug("operation completed", fields)
}

func (l *loggingProvider) Create(ctx context.Context, resource string, payload Record) (Record, error) {
	start := time.Now()
	rec, err := l.inner.Create(ctx, resource, payload)
	l.observe("create", resource, start, err)
	return rec, err
}

func (l *loggingProvider) CreateMany(ctx context.Context, resource string, payloads []Record) ([]Record, error) {
	start := time.Now()
	recs, err := l.inner.CreateMany(ctx, resource, payloads)
	l.observe("createMany", resource, start, err)
	return recs, err
}

func (l *loggingProvider) GetOne(ctx context.Context, resource string, id any) (Record, error) {
	start := time.Now()
	rec, err := l.inner.GetOne(ctx, resource, id)
	l.observe("getOne", resource, start, err)
	return rec, err
}

func (l *loggingProvider) GetMany(ctx context.Context, resource string, ids []any) ([]Record, error) {
	start := time.Now()
	recs, err := l.inner.GetMany(ctx, resource, ids)
	l.observe("getMany", resource, start, err)
	return recs, err
}

func (l *loggingProvider) GetList(ctx context.Context, resource string, q query.ListQuery) (*ListResult, error) {
	start := time.Now()
	result, err := l.inner.GetList(ctx, resource, q)
	l.observe("getList", resource, start, err)
	return result, err
}

func (l *loggingProvider) Update(ctx context.Context, resource string, id any, payload Record) (Record, error) {
	start := time.Now()
	rec, err := l.inner.Update(ctx, resource, id, payload)
	l.observe("update", resource, start, err)
	return rec, err
}

func (l *loggingProvider) UpdateMany(ctx context.Context, resource string, ids []any, payload Record) ([]Record, error) {
	start := time.Now()
	recs, err := l.inner.UpdateMany(ctx, resource, ids, payload)
	l.observe("updateMany", resource, start, err)
	return recs, err
}

func (l *loggingProvider) DeleteOne(ctx context.Context, resource string, id any) (Record, error) {
	start := time.Now()
	rec, err := l.inner.DeleteOne(ctx, resource, id)
	l.observe("deleteOne", resource, start, err)
	return rec, err
}

func (l *loggingProvider) DeleteMany(ctx context.Context, resource string, ids []any) ([]Record, error) {
	start := time.Now()
	recs, err := l.inner.DeleteMany(ctx, resource, ids)
	l.observe("deleteMany", resource, start, err)
	return recs, err
}

func (l *loggingProvider) Custom(ctx context.Context, req CustomRequest) ([]byte, error) {
	start := time.Now()
	body, err := l.inner.Custom(ctx, req)
	l.observe("custom", req.Path, start, err)
	return body, err
}
