package processors

import (
	"context"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/parallel"
	"sync"
)

// CheckAll checks matches concurrently. Reports are returned in input order.
// The first failing match, in input order, determines the error.
func (c *Checker) CheckAll(ctx context.Context, matches []*typed.Match) ([]*Report, error) {
	pool := parallel.NewWorkerPool(c.config.Workers)
	defer pool.Shutdown()

	reports := make([]*Report, len(matches))
	errs := make([]error, len(matches))
	var wg sync.WaitGroup
	for i, match := range matches {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			reports[i], errs[i] = c.Check(match)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("match %d at %v: %w", i, matches[i].Location, err)
		}
	}
	tracer().Infof("checked %d matches on %d workers", len(matches), pool.Size())
	return reports, nil
}
