// Package worker writes lookup records in the background so request
// handlers never wait on storage.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/metrics"
)

const writeTimeout = 5 * time.Second

// Job is one lookup record waiting to be written.
type Job struct {
	Record domain.LookupRecord
}

// Pool manages background workers for async jobs.
type Pool struct {
	log    ports.LookupLog
	logger zerolog.Logger
	jobs   chan Job
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a pool with the given queue size.
func NewPool(log ports.LookupLog, queueSize int, logger zerolog.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		log:    log,
		logger: logger.With().Str("component", "history_writer").Logger(),
		jobs:   make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for queued jobs to drain. Safe to call
// more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a record without blocking. It reports false when the
// record was dropped because the queue is full or the pool is stopped.
func (p *Pool) Submit(rec domain.LookupRecord) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.drop(rec, "pool stopped")
		return false
	}

	select {
	case p.jobs <- Job{Record: rec}:
		return true
	default:
		p.drop(rec, "queue full")
		return false
	}
}

func (p *Pool) drop(rec domain.LookupRecord, reason string) {
	metrics.HistoryDropped.Inc()
	p.logger.Warn().
		Str("operation", rec.Operation).
		Str("title", rec.Title).
		Str("reason", reason).
		Msg("dropping lookup record")
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.log.Record(ctx, job.Record); err != nil {
		p.logger.Warn().Err(err).Str("operation", job.Record.Operation).Msg("failed to write lookup record")
		return
	}
	p.logger.Debug().
		Str("operation", job.Record.Operation).
		Str("outcome", job.Record.Outcome).
		Msg("lookup recorded")
}
