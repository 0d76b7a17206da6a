package main

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0), 1), 8)

	tests := []struct {
		name     string
		explicit int
		want     int
	}{
		{"explicit", 3, 3},
		{"explicit capped", maxWorkers + 10, maxWorkers},
		{"auto", 0, auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolvePoolSize(tt.explicit); got != tt.want {
				t.Errorf("resolvePoolSize(%d) = %d, want %d", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestRunPool(t *testing.T) {
	t.Parallel()

	t.Run("visits every index once", func(t *testing.T) {
		t.Parallel()

		const n = 100
		var seen [n]atomic.Int32
		runPool(4, n, func(i int) { seen[i].Add(1) })

		for i := range n {
			if got := seen[i].Load(); got != 1 {
				t.Errorf("index %d visited %d times", i, got)
			}
		}
	})

	t.Run("never exceeds worker count", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		runPool(2, 20, func(int) {
			cur := active.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			runtime.Gosched()
			active.Add(-1)
		})

		if peak.Load() > 2 {
			t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
		}
	})

	t.Run("zero jobs returns immediately", func(t *testing.T) {
		t.Parallel()

		called := false
		runPool(4, 0, func(int) { called = true })
		if called {
			t.Error("fn called with no jobs")
		}
	})
}
