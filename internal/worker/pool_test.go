package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubOutcome struct {
	err error
}

func (o *stubOutcome) Err() error {
	return o.err
}

type stubTask struct {
	duration  time.Duration
	shouldErr bool
	ran       *int32 // atomic counter
}

func (t *stubTask) Run(ctx context.Context) Outcome {
	if t.ran != nil {
		atomic.AddInt32(t.ran, 1)
	}
	if t.duration > 0 {
		select {
		case <-time.After(t.duration):
		case <-ctx.Done():
			return &stubOutcome{err: ctx.Err()}
		}
	}
	if t.shouldErr {
		return &stubOutcome{err: errors.New("task error")}
	}
	return &stubOutcome{}
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5, nil); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0, nil); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1, nil); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsAllTasks(t *testing.T) {
	col := &Collector{}
	pool := NewPool(2, col.Add)
	pool.Start()

	var ran int32
	count := 10

	for i := 0; i < count; i++ {
		pool.Submit(&stubTask{ran: &ran})
	}

	pool.Wait()

	if got := len(col.Outcomes()); got != count {
		t.Errorf("expected %d outcomes, got %d", count, got)
	}
	if atomic.LoadInt32(&ran) != int32(count) {
		t.Errorf("expected %d tasks run, got %d", count, ran)
	}
}

func TestPool_BacklogFarExceedingWorkers(t *testing.T) {
	col := &Collector{}
	pool := NewPool(2, col.Add)
	pool.Start()

	var ran int32
	count := 64

	done := make(chan struct{})
	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&stubTask{ran: &ran})
		}
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool stalled with a task backlog far exceeding the worker count")
	}

	if got := len(col.Outcomes()); got != count {
		t.Errorf("expected %d outcomes, got %d", count, got)
	}
	if atomic.LoadInt32(&ran) != int32(count) {
		t.Errorf("expected %d tasks run, got %d", count, ran)
	}
}

// gaugeTask tracks how many tasks run at once
type gaugeTask struct {
	start    func()
	end      func()
	duration time.Duration
}

func (t *gaugeTask) Run(ctx context.Context) Outcome {
	if t.start != nil {
		t.start()
	}
	time.Sleep(t.duration)
	if t.end != nil {
		t.end()
	}
	return &stubOutcome{}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	workers := 10
	pool := NewPool(workers, nil)
	pool.Start()

	var current int32
	var maxConcurrent int32
	var completed int32
	var mu sync.Mutex

	totalTasks := 50

	for i := 0; i < totalTasks; i++ {
		pool.Submit(&gaugeTask{
			start: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxConcurrent {
					maxConcurrent = curr
				}
				mu.Unlock()
			},
			end: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			duration: 10 * time.Millisecond,
		})
	}

	pool.Wait()

	if atomic.LoadInt32(&completed) != int32(totalTasks) {
		t.Errorf("expected %d completed tasks, got %d", totalTasks, completed)
	}

	mu.Lock()
	max := maxConcurrent
	mu.Unlock()

	if max > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", max, workers)
	}
}

func TestPool_ErrorsReported(t *testing.T) {
	col := &Collector{}
	pool := NewPool(2, col.Add)
	pool.Start()

	pool.Submit(&stubTask{shouldErr: true})
	pool.Submit(&stubTask{shouldErr: false})

	pool.Wait()

	outcomes := col.Outcomes()
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed task, got %d", failed)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2, nil)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown should not panic or block
	done := make(chan struct{})
	go func() {
		pool.Submit(&stubTask{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2, nil)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&gaugeTask{
		start:    func() { close(started) },
		duration: 200 * time.Millisecond,
	})

	<-started

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown timed out")
	}
}
