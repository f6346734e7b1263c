package rest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kbukum/restdata/httpclient"
)

func TestFanOutPreservesOrder(t *testing.T) {
	results, errs := fanOut(context.Background(), 50, 4, func(_ context.Context, i int) (int, error) {
		return i * 10, nil
	})

	for i, got := range results {
		if got != i*10 {
			t.Errorf("results[%d] = %d, want %d", i, got, i*10)
		}
		if errs[i] != nil {
			t.Errorf("errs[%d] = %v, want nil", i, errs[i])
		}
	}
}

func TestFanOutLimitsConcurrency(t *testing.T) {
	const limit = 3

	var inFlight, peak int64
	var mu sync.Mutex

	_, errs := fanOut(context.Background(), 20, limit, func(_ context.Context, i int) (struct{}, error) {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		defer atomic.AddInt64(&inFlight, -1)
		return struct{}{}, nil
	})

	for i, err := range errs {
		if err != nil {
			t.Errorf("errs[%d] = %v, want nil", i, err)
		}
	}
	if peak > limit {
		t.Errorf("peak in-flight = %d, want <= %d", peak, limit)
	}
}

func TestFanOutCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, errs := fanOut(ctx, 5, 2, func(_ context.Context, i int) (int, error) {
		return i, nil
	})

	for i, err := range errs {
		if !httpclient.IsCancelled(err) {
			t.Errorf("errs[%d] = %v, want cancelled classification", i, err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("errs[%d] = %v, want context.Canceled cause", i, err)
		}
	}

	// Skipped items produce the same error shape as in-flight cancellations,
	// so the folded batch error classifies consistently.
	if err := batchError("deleteMany", "posts", errs); !httpclient.IsCancelled(err) {
		t.Errorf("batchError() = %v, want cancelled classification", err)
	}
}

func TestFanOutZeroItems(t *testing.T) {
	results, errs := fanOut(context.Background(), 0, 4, func(_ context.Context, i int) (int, error) {
		t.Error("fn called for empty input")
		return 0, nil
	})
	if len(results) != 0 || len(errs) != 0 {
		t.Errorf("got %d results and %d errors, want none", len(results), len(errs))
	}
}

func TestBatchError(t *testing.T) {
	t.Run("all nil", func(t *testing.T) {
		if err := batchError("createMany", "posts", []error{nil, nil, nil}); err != nil {
			t.Errorf("batchError() = %v, want nil", err)
		}
	})

	t.Run("first failure surfaced", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		later := fmt.Errorf("later")
		err := batchError("updateMany", "posts", []error{nil, boom, later})

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("batchError() = %v, want *BatchError", err)
		}
		if batchErr.Index != 1 {
			t.Errorf("Index = %d, want 1", batchErr.Index)
		}
		if !errors.Is(err, boom) {
			t.Error("errors.Is(err, boom) = false, want unwrap to first failure")
		}
		if errors.Is(err, later) {
			t.Error("errors.Is(err, later) = true, want only first failure unwrapped")
		}
	})
}
