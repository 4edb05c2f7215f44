package tpl2pdf

import (
	"context"
	"runtime"
	"sync"
	"testing"
)

// fakePoolOptions keeps pool services off the real browser.
func fakePoolOptions() []Option {
	return []Option{
		WithSurfaceFactory(func() (Surface, error) { return newFakeSurface(), nil }),
		WithSinkFactory(func(orientation string, w, h float64) (Sink, error) { return newFakeSink(), nil }),
	}
}

func TestNewServicePool(t *testing.T) {
	pool := NewServicePool(3, fakePoolOptions()...)
	defer pool.Close()

	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
}

func TestNewServicePoolClampsToMinimum(t *testing.T) {
	pool := NewServicePool(0, fakePoolOptions()...)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewServicePool(2, fakePoolOptions()...)
	defer pool.Close()

	first := pool.Acquire()
	second := pool.Acquire()
	if first == nil || second == nil {
		t.Fatal("Acquire() returned nil service")
	}
	if first == second {
		t.Error("Acquire() returned the same service twice while both held")
	}

	pool.Release(first)
	third := pool.Acquire()
	if third != first {
		t.Error("Acquire() after release did not reuse the returned service")
	}
	pool.Release(second)
	pool.Release(third)
}

func TestPoolConcurrentGeneration(t *testing.T) {
	pool := NewServicePool(4, fakePoolOptions()...)
	defer pool.Close()

	const jobs = 16
	var wg sync.WaitGroup
	errs := make([]error, jobs)

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			_, err := svc.Generate(context.Background(), Input{
				Template: "<p>{{n}}</p>",
				Data:     map[string]any{"n": n},
			})
			errs[n] = err
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("job %d: Generate() error = %v", i, err)
		}
	}
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	pool := NewServicePool(1, fakePoolOptions()...)
	_ = pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestPoolReleaseAfterClose(t *testing.T) {
	pool := NewServicePool(1, fakePoolOptions()...)
	svc := pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Must not panic on the closed channel.
	pool.Release(svc)
}

func TestResolvePoolSize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit workers win", workers: 3, want: 3},
		{name: "explicit above cap honored", workers: 12, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}

	auto := ResolvePoolSize(0)
	if auto < MinPoolSize || auto > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, outside [%d, %d]", auto, MinPoolSize, MaxPoolSize)
	}
	if cpus := runtime.GOMAXPROCS(0); cpus >= 2*MinPoolSize && auto > cpus {
		t.Errorf("ResolvePoolSize(0) = %d exceeds GOMAXPROCS %d", auto, cpus)
	}
}
