// Package worker runs independent pipeline invocations concurrently,
// one per input file. Invocations share no mutable state, so the pool
// needs no coordination beyond the channels that move jobs and results.
package worker

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ianrastall/pgnfilter/internal/pipeline"
)

// ErrSkipped marks a job that was queued but never run because the
// pool was stopped first.
var ErrSkipped = errors.New("job skipped: pool stopped")

// Job names one filtering run: a source file and its destination.
type Job struct {
	SourcePath string
	DestPath   string
}

// Result is the outcome of one job.
type Result struct {
	Job     Job
	Outcome pipeline.Outcome
	Err     error
}

// RunFunc executes one job. The function is called from multiple
// goroutines and must not share mutable state between calls.
type RunFunc func(job Job) Result

// Pool runs jobs on a fixed number of worker goroutines.
type Pool struct {
	numWorkers int
	bufferSize int
	jobChan    chan Job
	resultChan chan Result
	runFunc    RunFunc
	wg         sync.WaitGroup
	stopFlag   int32
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the job and result channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. runFunc is required; the defaults are one
// worker and a buffer of 4 jobs.
func NewPool(runFunc RunFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 4,
		runFunc:    runFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobChan = make(chan Job, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker drains the job channel until it is closed. After Stop,
// remaining jobs are reported as skipped without being run.
func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobChan {
		if p.IsStopped() {
			p.resultChan <- Result{Job: job, Err: ErrSkipped}
			continue
		}
		p.resultChan <- p.runFunc(job)
	}
}

// Submit queues a job. It blocks while the job channel is full.
func (p *Pool) Submit(job Job) {
	p.jobChan <- job
}

// Stop makes workers skip jobs that have not started yet. Jobs already
// running finish normally; their own cancellation is the run context's
// concern, not the pool's.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the job channel and, once all workers finish, the
// result channel. Call after the last Submit.
func (p *Pool) Close() {
	close(p.jobChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel results arrive on. It is closed by
// Close after the last result.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
