package mesh

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BatchOptions tunes batch execution. Zero values mean one worker per
// CPU core and no per-item deadline.
type BatchOptions struct {
	Workers     int
	ItemTimeout time.Duration
}

// BatchResult aggregates a batch run: the successful results in input
// order, and the success/total counts for reporting. Failed items are
// logged and omitted, never represented as placeholders.
type BatchResult struct {
	Results   []*Result
	Total     int
	Succeeded int
}

// SuccessRate returns the fraction of items that produced a mesh, in
// [0, 1]. An empty batch counts as fully successful.
func (r BatchResult) SuccessRate() float64 {
	if r.Total == 0 {
		return 1
	}
	return float64(r.Succeeded) / float64(r.Total)
}

// Batch generates meshes for every image path. Items are independent
// and run on a bounded worker pool; a failing item is logged with its
// cause and excluded, it never aborts the batch. The relative input
// order of successful items is preserved.
func (g *Generator) Batch(ctx context.Context, paths []string, opts BatchOptions) BatchResult {
	total := len(paths)
	if total == 0 {
		g.log.Info("empty image batch, nothing to process")
		return BatchResult{}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g.log.Info("starting batch",
		zap.Int("images", total),
		zap.Int("workers", workers))

	slots := make([]*Result, total)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			semaphore <- struct{}{}        // acquire
			defer func() { <-semaphore }() // release

			slots[idx] = g.batchItem(ctx, path, opts.ItemTimeout)
		}(i, path)
	}
	wg.Wait()

	// Compact in input order: failures left nil slots.
	results := make([]*Result, 0, total)
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}

	batch := BatchResult{Results: results, Total: total, Succeeded: len(results)}
	g.log.Info("batch complete",
		zap.Int("succeeded", batch.Succeeded),
		zap.Int("total", batch.Total),
		zap.Float64("success_rate", batch.SuccessRate()))
	return batch
}

// batchItem runs one image with failure isolation: errors and panics
// are logged against the item and reported as a nil result.
func (g *Generator) batchItem(ctx context.Context, path string, timeout time.Duration) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("panic while processing image",
				zap.String("image", path),
				zap.Any("panic", r))
			result = nil
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r, err := g.GenerateFile(ctx, path)
	if err != nil {
		g.log.Warn("skipping image",
			zap.String("image", path),
			zap.Error(err))
		return nil
	}
	return r
}
