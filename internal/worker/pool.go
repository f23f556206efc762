package worker

import (
	"context"
	"sync"
)

// Task is one unit of document work executed by the pool
type Task interface {
	Run(ctx context.Context) Outcome
}

// Outcome is what a task produces
type Outcome interface {
	Err() error
}

// Pool executes tasks across a bounded set of workers. Each outcome is
// handed to the sink as soon as its task finishes, so submission never
// waits on result collection and the queue depth is independent of how
// many tasks a run submits. The sink is called from worker goroutines
// and must be safe for concurrent use. Completion order is unrelated to
// submission order; tasks carry their own identity.
type Pool struct {
	workers int
	sink    func(Outcome)
	tasks   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewPool creates a pool with the given number of workers. A nil sink
// discards outcomes.
func NewPool(workers int, sink func(Outcome)) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if sink == nil {
		sink = func(Outcome) {}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		sink:    sink,
		tasks:   make(chan Task, workers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.sink(task.Run(p.ctx))
		}
	}
}

// Submit queues a task, blocking until a worker can take it. Submitting
// after Shutdown is a no-op.
func (p *Pool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

// Wait closes the queue and blocks until every queued task has run and
// its outcome has been delivered to the sink. No submissions may follow.
func (p *Pool) Wait() {
	close(p.tasks)
	p.wg.Wait()
}

// Shutdown stops the pool without draining queued tasks
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Collector is a sink that gathers outcomes for callers that want the
// full set once the pool drains
type Collector struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// Add records one outcome; safe for concurrent use
func (c *Collector) Add(outcome Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

// Outcomes returns everything collected so far
func (c *Collector) Outcomes() []Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes
}
