package mdserve

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/alnah/go-mdserve/internal/logging"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps the number of connection handlers.
	MaxPoolSize = 64

	// workersPerCPU oversubscribes since jobs mostly wait on the network.
	workersPerCPU = 2
)

// Job is a unit of work executed by a worker.
type Job interface {
	Run()
}

// JobFunc adapts an ordinary function to Job.
type JobFunc func()

// Run calls f.
func (f JobFunc) Run() { f() }

// jobQueue is the FIFO shared by all workers of a pool.
// Its condition variable is the only place a worker blocks.
type jobQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []Job
	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends job and wakes one waiting worker.
func (q *jobQueue) push(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrPoolClosed
	}
	q.jobs = append(q.jobs, job)
	q.cond.Signal()
	return nil
}

// pop blocks until a job is available. It returns false once the queue is
// closed and empty.
func (q *jobQueue) pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return nil, false
	}

	job := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return job, true
}

// close stops intake and wakes every waiting worker.
func (q *jobQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// worker owns one goroutine. done is closed when the goroutine returns.
type worker struct {
	id   int
	done chan struct{}
}

// WorkerPool runs jobs on a fixed number of goroutines created up front.
// Jobs are taken from a single unbounded FIFO queue; each job is executed by
// exactly one worker and a worker executes one job at a time.
type WorkerPool struct {
	size     int
	queue    *jobQueue
	workers  []*worker
	logger   logging.Logger
	shutdown sync.Once
}

// PoolOption configures a WorkerPool.
type PoolOption func(*WorkerPool)

// WithPoolLogger sets the logger for worker lifecycle and job panics.
func WithPoolLogger(l logging.Logger) PoolOption {
	return func(p *WorkerPool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewWorkerPool starts size workers. A size below 1 is treated as 1.
func NewWorkerPool(size int, opts ...PoolOption) *WorkerPool {
	if size < MinPoolSize {
		size = MinPoolSize
	}

	p := &WorkerPool{
		size:    size,
		queue:   newJobQueue(),
		workers: make([]*worker, size),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for id := range size {
		w := &worker{id: id, done: make(chan struct{})}
		p.workers[id] = w
		go p.run(w)
	}

	return p
}

// run is the worker loop: wait, execute, repeat until the queue is closed
// and drained.
func (p *WorkerPool) run(w *worker) {
	defer close(w.done)

	p.logger.Trace("worker started", "worker", w.id)
	for {
		job, ok := p.queue.pop()
		if !ok {
			p.logger.Debug("worker stopped", "worker", w.id)
			return
		}
		p.logger.Trace("worker got a job", "worker", w.id)
		p.execute(w, job)
	}
}

// execute runs job, recovering a panic so the worker survives it.
func (p *WorkerPool) execute(w *worker, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job panicked",
				"worker", w.id,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	job.Run()
}

// Submit enqueues job. It never waits for a worker to become free.
// Returns ErrNilJob for a nil job and ErrPoolClosed after Shutdown.
func (p *WorkerPool) Submit(job Job) error {
	if job == nil {
		return ErrNilJob
	}
	if f, ok := job.(JobFunc); ok && f == nil {
		return ErrNilJob
	}
	return p.queue.push(job)
}

// Shutdown stops accepting jobs, lets the workers finish their current job
// and everything still queued, then waits for all of them to exit.
// Later calls return after the first one completes and do nothing else.
func (p *WorkerPool) Shutdown() {
	p.shutdown.Do(func() {
		p.logger.Debug("shutting down workers", "workers", p.size, "pending", p.queue.len())
		p.queue.close()
		for _, w := range p.workers {
			<-w.done
			p.logger.Trace("worker joined", "worker", w.id)
		}
	})
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

// Pending returns the number of queued jobs not yet picked up by a worker.
func (p *WorkerPool) Pending() int {
	return p.queue.len()
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) * workersPerCPU

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
