package notify

import (
	"errors"

	"go.uber.org/zap"
)

var ErrQueueFull = errors.New("notification queue full")

type WorkerPoolI interface {
	AddTask(task Task) error
	Close()
}

type Task func() error

type WorkerPool struct {
	pool chan Task
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	pool := make(chan Task, queueSize)
	wp := &WorkerPool{pool: pool}

	for i := 0; i < workers; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("task execution failed", zap.Error(err))
		}
	}
}

// AddTask enqueues without blocking; a full queue drops the task. Side
// effects are best-effort and must never stall a lifecycle operation.
func (wp *WorkerPool) AddTask(task Task) error {
	select {
	case wp.pool <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (wp *WorkerPool) Close() {
	select {
	case <-wp.pool:
	default:
		close(wp.pool)
	}
}
