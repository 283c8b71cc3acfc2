//go:build bench

package mdserve

import (
	"fmt"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := ResolvePoolSize(w)
				_ = result
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkWorkerPoolSubmit measures queue hand-off for trivial jobs.
func BenchmarkWorkerPoolSubmit(b *testing.B) {
	sizes := []int{1, 2, 4, 8}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("workers=%d", size), func(b *testing.B) {
			p := NewWorkerPool(size)
			var wg sync.WaitGroup
			job := JobFunc(wg.Done)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				wg.Add(1)
				if err := p.Submit(job); err != nil {
					b.Fatal(err)
				}
			}
			wg.Wait()

			b.StopTimer()
			p.Shutdown()
		})
	}
}

// BenchmarkWorkerPoolParallelSubmit measures contention from many producers.
func BenchmarkWorkerPoolParallelSubmit(b *testing.B) {
	p := NewWorkerPool(4)
	defer p.Shutdown()

	var wg sync.WaitGroup
	job := JobFunc(wg.Done)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			wg.Add(1)
			if err := p.Submit(job); err != nil {
				b.Error(err)
				wg.Done()
			}
		}
	})
	wg.Wait()
}
