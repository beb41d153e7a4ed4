package msm

import (
	"runtime"
	"sync"

	"github.com/consensys/gnark/logger"
)

// minPoolWorkers keeps some parallelism available on small machines; proving
// workloads schedule far more chunks than cores.
const minPoolWorkers = 6

// Pool is a fixed set of long-lived worker goroutines draining a job queue.
type Pool struct {
	jobs    chan func()
	workers int
}

// NewPool starts a pool of n workers.
// If n <= 0, it defaults to max(runtime.NumCPU(), minPoolWorkers).
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
		if n < minPoolWorkers {
			n = minPoolWorkers
		}
	}
	p := &Pool{
		jobs:    make(chan func()),
		workers: n,
	}
	for i := 0; i < n; i++ {
		go func() {
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Workers reports the pool width.
func (p *Pool) Workers() int { return p.workers }

// Submit hands fn to the pool, blocking until a worker picks it up.
// Submitting to a stopped pool panics.
func (p *Pool) Submit(fn func()) { p.jobs <- fn }

// Stop ends the workers once running jobs finish. The default pool is never
// stopped.
func (p *Pool) Stop() { close(p.jobs) }

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the process-wide pool, started on first use and kept
// for the life of the process.
func DefaultPool() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool(0)
		log := logger.Logger()
		log.Debug().Int("workers", defaultPool.Workers()).Msg("multiscalar worker pool started")
	})
	return defaultPool
}
