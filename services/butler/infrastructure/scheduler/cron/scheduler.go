// Package cron runs butler orders in-process on robfig/cron.
package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/butler/domain"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

const queueSize = 256

// Executor runs one order.
type Executor interface {
	Execute(ctx context.Context, order models.Order) error
}

// Scheduler keeps periodic orders in a cron table and runs placed orders on
// a single worker goroutine. A placed order waiting in the queue is replaced
// by a newer order with the same tag.
type Scheduler struct {
	exec Executor
	cron *cron.Cron
	log  logger.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	pending map[string]models.Order
	queue   chan string
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(exec Executor, log logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		exec: exec,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		log:     log,
		entries: make(map[string]cron.EntryID),
		pending: make(map[string]models.Order),
		queue:   make(chan string, queueSize),
	}
}

// Start runs the cron table and the order worker until Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.wg.Add(1)
	go s.work()
	s.log.Info("butler cron scheduler started")
}

// Stop halts the cron table, lets the running order finish and drops the queue.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	stopped := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.log.Info("butler cron scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop cron scheduler: %w", ctx.Err())
	}
}

func (s *Scheduler) PlaceOrder(_ context.Context, order models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	tag := order.Tag()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSchedulerClosed
	}
	_, queued := s.pending[tag]
	s.pending[tag] = order
	if queued {
		return nil
	}
	select {
	case s.queue <- tag:
		return nil
	default:
		delete(s.pending, tag)
		return fmt.Errorf("place order %s: queue full", tag)
	}
}

func (s *Scheduler) ScheduleOrder(ctx context.Context, order models.Order, every time.Duration) error {
	if err := order.Validate(); err != nil {
		return err
	}
	tag := order.Tag()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSchedulerClosed
	}
	if id, ok := s.entries[tag]; ok {
		s.cron.Remove(id)
	}
	s.entries[tag] = s.cron.Schedule(cron.Every(every), cron.FuncJob(func() {
		if err := s.PlaceOrder(ctx, order); err != nil {
			s.log.WarnContext(ctx, "periodic butler order not placed", "tag", tag, "error", err)
		}
	}))
	s.log.InfoContext(ctx, "butler order scheduled", "tag", tag, "every", every)
	return nil
}

func (s *Scheduler) CancelOrder(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[tag]; ok {
		s.cron.Remove(id)
		delete(s.entries, tag)
	}
	delete(s.pending, tag)
	return nil
}

func (s *Scheduler) CancelAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tag, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, tag)
	}
	clear(s.pending)
	return nil
}

func (s *Scheduler) work() {
	defer s.wg.Done()
	for tag := range s.queue {
		s.mu.Lock()
		order, ok := s.pending[tag]
		delete(s.pending, tag)
		s.mu.Unlock()
		if !ok {
			continue // cancelled while queued
		}
		if err := s.exec.Execute(s.ctx, order); err != nil {
			s.log.ErrorContext(s.ctx, "butler order failed", "tag", tag, "error", err)
		}
	}
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
