package analyze

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelAnalyze_OrderedCollect(t *testing.T) {
	a := NewAnalyzer(nil)

	const n = 8
	items := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		items <- WorkItem{
			Seq:       i,
			Name:      fmt.Sprintf("input-%d.vcf", i),
			Text:      "chr10\t96702047\trs1799853\tC\tT\t.\tPASS\t.\tGT\t1/1\n",
			PatientID: fmt.Sprintf("P%d", i),
		}
	}
	close(items)

	results := a.ParallelAnalyze(items, 4)

	var order []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Result)
		assert.Equal(t, fmt.Sprintf("P%d", r.Seq), r.Result.PatientID)
		order = append(order, r.Seq)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, order, n)
	for i, seq := range order {
		assert.Equal(t, i, seq, "results not in sequence order")
	}
}

func TestParallelAnalyze_DefaultWorkerCount(t *testing.T) {
	a := NewAnalyzer(nil)
	items := make(chan WorkItem, 1)
	items <- WorkItem{Seq: 0, Text: ""}
	close(items)

	seen := 0
	err := OrderedCollect(a.ParallelAnalyze(items, 0), func(r WorkResult) error {
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

// A failing callback must not strand workers blocked on the results
// channel; the error path drains it so the pool winds down.
func TestOrderedCollect_CallbackErrorUnblocksWorkers(t *testing.T) {
	a := NewAnalyzer(nil)

	const n = 32
	items := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		items <- WorkItem{
			Seq:  i,
			Text: "chr10\t96702047\trs1799853\tC\tT\t.\tPASS\t.\tGT\t1/1\n",
		}
	}
	close(items)

	before := runtime.NumGoroutine()
	results := a.ParallelAnalyze(items, 2)

	wantErr := fmt.Errorf("writer failed")
	err := OrderedCollect(results, func(WorkResult) error { return wantErr })
	require.ErrorIs(t, err, wantErr)

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before,
		"workers still running after callback error")
}

func TestOrderedCollect_PropagatesCallbackError(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 1}
	close(results)

	wantErr := fmt.Errorf("writer failed")
	err := OrderedCollect(results, func(WorkResult) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
