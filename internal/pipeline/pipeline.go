// internal/pipeline/pipeline.go

// Package pipeline fans the pair scan out over a worker pool while keeping
// the output order identical to the serial scan: each pair owns an index
// slot, workers fill slots, and the compacted slice preserves enumeration
// order. Threads=1 and Threads=N produce byte-identical reports.
package pipeline

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"oligotools/internal/overlap"
	"oligotools/internal/seq"
)

// Config controls the scanning pool.
type Config struct {
	Threads int // worker goroutines; <1 means all CPUs
}

// Workers resolves a thread-count option: values below 1 mean one worker
// per CPU, matching the CLIs' "--threads 0 = all CPUs" contract.
func Workers(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// ScanAll scans every pair of set under p. It checks ctx between pair
// iterations, so a long n² scan stops promptly on cancellation.
func ScanAll(ctx context.Context, cfg Config, set []seq.Record, p overlap.Params) ([]overlap.Result, error) {
	threads := Workers(cfg.Threads)

	pairs := overlap.Pairs(len(set), p.IncludeSelf)
	if threads > len(pairs) {
		threads = len(pairs)
	}

	type slot struct {
		res overlap.Result
		ok  bool
	}
	slots := make([]slot, len(pairs))

	if threads <= 1 {
		for i, pi := range pairs {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			slots[i].res, slots[i].ok = overlap.ScanPair(set[pi.I], set[pi.J], p)
		}
	} else {
		var next atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < threads; w++ {
			g.Go(func() error {
				for {
					i := int(next.Add(1)) - 1
					if i >= len(pairs) {
						return nil
					}
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					pi := pairs[i]
					slots[i].res, slots[i].ok = overlap.ScanPair(set[pi.I], set[pi.J], p)
				}
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make([]overlap.Result, 0, len(pairs))
	for i := range slots {
		if slots[i].ok {
			out = append(out, slots[i].res)
		}
	}
	return out, nil
}

// PairCount reports how many comparisons ScanAll will perform.
func PairCount(n int, includeSelf bool) int {
	c := n * (n - 1) / 2
	if includeSelf {
		c += n
	}
	return c
}
