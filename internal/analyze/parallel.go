package analyze

import (
	"runtime"
	"sync"
)

// WorkItem holds one VCF text ready for analysis, typically one input file
// of a batch.
type WorkItem struct {
	Seq       int
	Name      string // input name for reporting (file path)
	Text      string
	PatientID string
}

// WorkResult holds the analysis outcome for a single work item.
type WorkResult struct {
	Seq    int
	Name   string
	Result *Result
	Err    error
}

// ParallelAnalyze runs analysis over work items using a pool of workers.
// Each item remains a fully sequential run; only distinct inputs execute
// concurrently. Results arrive in completion order; use OrderedCollect to
// consume them in sequence-number order. If workers is 0, runtime.NumCPU()
// is used.
func (a *Analyzer) ParallelAnalyze(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for item := range items {
				res, err := a.Analyze(item.Text, item.PatientID)
				results <- WorkResult{
					Seq:    item.Seq,
					Name:   item.Name,
					Result: res,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until the next expected sequence number
// arrives. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
			nextSeq++
		}
	}

	return nil
}
