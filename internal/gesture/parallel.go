package gesture

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Job pairs a script with the runner that should replay it.
type Job struct {
	Name   string
	Runner *Runner
	Script *Script
}

// RunAll replays every job concurrently. Each job needs its own Runner.
// Results are returned in job order; a failed job leaves its slot holding
// whatever frames it produced and its error is joined into the returned error.
func RunAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := jobs[idx]
			res, err := job.Runner.Run(ctx, job.Script)
			results[idx] = res
			if err != nil {
				errs[idx] = fmt.Errorf("%s: %w", job.Name, err)
			}
		}(i)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}
