package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over every item with at most workers goroutines and returns
// the results in submission order, regardless of completion order. The merge
// logic downstream depends on that ordering. The first error cancels the
// group and is returned.
func Map[In, Out any](ctx context.Context, workers int, items []In, fn func(ctx context.Context, item In) (Out, error)) ([]Out, error) {
	results := make([]Out, len(items))

	g, ctx := errgroup.WithContext(ctx)
	// SetLimit(0) blocks Go forever; a misconfigured worker count degrades
	// to serial execution instead.
	g.SetLimit(max(workers, 1))
	for i, item := range items {
		g.Go(func() error {
			out, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Chunks splits items into consecutive slices of at most size elements. The
// returned slices share the backing array of items. A non-positive size
// yields a single chunk.
func Chunks[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
