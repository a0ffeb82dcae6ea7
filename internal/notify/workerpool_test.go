package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	wp := NewWorkerPool(2, 8)
	defer wp.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := wp.AddTask(func() error {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
		assert.NoError(t, err)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, ran)
}

func TestWorkerPoolFullQueue(t *testing.T) {
	// no workers, so every enqueued task stays in the channel
	wp := &WorkerPool{pool: make(chan Task, 1)}

	assert.NoError(t, wp.AddTask(func() error { return nil }))
	assert.ErrorIs(t, wp.AddTask(func() error { return nil }), ErrQueueFull)
}

func TestWorkerPoolSwallowsTaskErrors(t *testing.T) {
	wp := NewWorkerPool(1, 8)
	defer wp.Close()

	done := make(chan struct{})
	err := wp.AddTask(func() error {
		close(done)
		return assert.AnError
	})
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}
