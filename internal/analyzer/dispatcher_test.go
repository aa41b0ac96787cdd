package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linklens/linklens/internal/fetcher"
	"github.com/linklens/linklens/internal/model"
)

func matchedPageBody() string {
	return `<html><head><title>t</title></head><body><a href="https://target.com/x">x</a></body></html>`
}

func makeTasks(n int) []model.AnalysisTask {
	tasks := make([]model.AnalysisTask, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, model.AnalysisTask{
			URL:          fmt.Sprintf("https://site%d.com/page", i),
			TargetDomain: "target.com",
		})
	}
	return tasks
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("returns exactly one record per task", func(t *testing.T) {
		t.Parallel()

		f := &stubFetcher{fn: func(string) (*fetcher.Result, error) { return htmlResult(matchedPageBody()) }}
		d := NewDispatcher(NewRunner(f), WithConcurrency(4))

		tasks := makeTasks(17)
		results, err := d.Dispatch(context.Background(), tasks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(tasks) {
			t.Fatalf("expected %d records, got %d", len(tasks), len(results))
		}

		// The set of URLs across records must equal the set of input URLs.
		want := make(map[string]bool, len(tasks))
		for _, task := range tasks {
			want[task.URL] = true
		}
		for _, res := range results {
			if !want[res.URL] {
				t.Errorf("unexpected or duplicated URL in results: %q", res.URL)
			}
			delete(want, res.URL)
		}
		if len(want) != 0 {
			t.Errorf("missing records for URLs: %v", want)
		}
	})

	t.Run("one failing task does not abort the batch", func(t *testing.T) {
		t.Parallel()

		f := &stubFetcher{fn: func(rawURL string) (*fetcher.Result, error) {
			if strings.Contains(rawURL, "site1") {
				return nil, &fetcher.FetchError{Kind: fetcher.KindTimeout, URL: rawURL, Err: errors.New("deadline exceeded")}
			}
			return htmlResult(matchedPageBody())
		}}
		d := NewDispatcher(NewRunner(f), WithConcurrency(3))

		results, err := d.Dispatch(context.Background(), makeTasks(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 records, got %d", len(results))
		}

		var failed, analyzed int
		for _, res := range results {
			if res.Error != "" {
				failed++
				continue
			}
			analyzed++
			if res.MatchStatus != model.MatchStatusMatched {
				t.Errorf("healthy task should be fully analyzed, got %q", res.MatchStatus)
			}
		}
		if failed != 1 || analyzed != 2 {
			t.Errorf("expected 1 failed and 2 analyzed, got %d/%d", failed, analyzed)
		}
	})

	t.Run("never exceeds the concurrency cap", func(t *testing.T) {
		t.Parallel()

		const limit = 3

		var inFlight, peak atomic.Int64
		f := &stubFetcher{fn: func(string) (*fetcher.Result, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return htmlResult(matchedPageBody())
		}}

		d := NewDispatcher(NewRunner(f), WithConcurrency(limit))
		if _, err := d.Dispatch(context.Background(), makeTasks(20)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := peak.Load(); got > limit {
			t.Errorf("observed %d concurrent fetches, cap is %d", got, limit)
		}
	})

	t.Run("progress is strictly increasing up to total", func(t *testing.T) {
		t.Parallel()

		f := &stubFetcher{fn: func(string) (*fetcher.Result, error) { return htmlResult(matchedPageBody()) }}

		var mu sync.Mutex
		var seen []int
		d := NewDispatcher(
			NewRunner(f),
			WithConcurrency(5),
			WithProgress(func(completed, total int) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, completed)
				if total != 12 {
					t.Errorf("expected total 12, got %d", total)
				}
			}),
		)

		if _, err := d.Dispatch(context.Background(), makeTasks(12)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if len(seen) != 12 {
			t.Fatalf("expected 12 progress signals, got %d", len(seen))
		}
		for i, v := range seen {
			if v != i+1 {
				t.Fatalf("progress not strictly increasing: %v", seen)
			}
		}
	})

	t.Run("rejects invalid concurrency before starting", func(t *testing.T) {
		t.Parallel()

		f := &stubFetcher{fn: func(string) (*fetcher.Result, error) { return htmlResult(matchedPageBody()) }}
		d := NewDispatcher(NewRunner(f), WithConcurrency(0))

		if _, err := d.Dispatch(context.Background(), makeTasks(2)); err == nil {
			t.Fatal("expected configuration error for concurrency 0")
		}
		if f.calls.Load() != 0 {
			t.Errorf("no task may start on config error, got %d fetches", f.calls.Load())
		}
	})

	t.Run("cancellation yields partial results, one record per task", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var once sync.Once
		f := &stubFetcher{fn: func(string) (*fetcher.Result, error) {
			// Cancel the batch after the first fetch begins.
			once.Do(cancel)
			return htmlResult(matchedPageBody())
		}}

		d := NewDispatcher(NewRunner(f), WithConcurrency(1))
		results, err := d.Dispatch(ctx, makeTasks(5))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(results) != 5 {
			t.Fatalf("cancelled batch must still produce 5 records, got %d", len(results))
		}

		var cancelled int
		for _, res := range results {
			if strings.Contains(res.Error, "cancelled") {
				cancelled++
			}
		}
		if cancelled == 0 {
			t.Error("expected at least one record marked as cancelled")
		}
	})
}
