package rest

import (
	"context"
	"sync"

	"github.com/kbukum/restdata/httpclient"
)

// fanOut runs fn for each of n items with at most limit in flight, writing
// each result into its input slot so the output order matches the input
// order regardless of completion order. A cancelled context stops new
// items from starting; in-flight items run to completion. Skipped items
// fail with the same cancellation error shape in-flight items produce.
func fanOut[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) ([]T, []error) {
	results := make([]T, n)
	errs := make([]error, n)

	if limit > n {
		limit = n
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = httpclient.NewCancelledError(err)
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = fn(ctx, i)
		}(i)
	}
	wg.Wait()

	return results, errs
}

// batchError folds per-index errors into a single BatchError, or nil when
// every item succeeded.
func batchError(op, resource string, errs []error) error {
	first := -1
	for i, err := range errs {
		if err != nil {
			first = i
			break
		}
	}
	if first == -1 {
		return nil
	}
	return &BatchError{
		Op:       op,
		Resource: resource,
		Index:    first,
		Err:      errs[first],
		Errs:     errs,
	}
}
