package sequencer

import (
	"context"
	"sync"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// Sequencer serializes balance-mutating operations per user. Two concurrent
// accruals could otherwise read the same stale checkpoint and double-credit,
// and two concurrent first purchases could both pass the single-purchase
// check before either referral record is marked paid. Every mutating flow
// (purchase, accrual, deposit credit, withdrawal) runs through Do.
type Sequencer struct {
	logger coreport.Logger

	// one ordered queue and worker goroutine per active user
	userQueues sync.Map // map[uint64]chan *operation
	workers    sync.WaitGroup

	// senders counts Do calls between their closed check and the enqueue;
	// Shutdown waits for them before closing any queue, so a send can never
	// hit a closed channel
	senders sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Op is a serialized unit of work executed on the user's queue worker
type Op func(ctx context.Context) error

// operation is a queued request waiting for its turn
type operation struct {
	ctx    context.Context
	name   string
	fn     Op
	result chan error
}

// queueCapacity bounds how many operations may wait per user
const queueCapacity = 64

// New creates a sequencer
func New(logger coreport.Logger) *Sequencer {
	return &Sequencer{logger: logger}
}

// Do enqueues fn on the user's queue and blocks until it ran or ctx ends.
// Operations for the same user execute strictly in enqueue order; operations
// for different users run independently.
func (s *Sequencer) Do(ctx context.Context, userID uint64, name string, fn Op) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errs.ErrInternalServer
	}

	queueIface, loaded := s.userQueues.LoadOrStore(userID, make(chan *operation, queueCapacity))
	queue := queueIface.(chan *operation)
	if !loaded {
		s.workers.Add(1)
		go s.drain(userID, queue)
	}
	s.senders.Add(1)
	s.mu.Unlock()

	op := &operation{
		ctx:    ctx,
		name:   name,
		fn:     fn,
		result: make(chan error, 1),
	}

	select {
	case queue <- op:
		s.senders.Done()
	case <-ctx.Done():
		s.senders.Done()
		s.logger.Warn("Context ended while enqueueing operation", map[string]any{
			"user_id":   userID,
			"operation": name,
			"error":     ctx.Err().Error(),
		})
		return ctx.Err()
	}

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		s.logger.Warn("Context ended while waiting for operation result", map[string]any{
			"user_id":   userID,
			"operation": name,
			"error":     ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// drain is the worker goroutine owning one user's queue
func (s *Sequencer) drain(userID uint64, queue chan *operation) {
	defer s.workers.Done()

	for op := range queue {
		s.logger.Debug("Running serialized operation", map[string]any{
			"user_id":   userID,
			"operation": op.name,
		})

		err := op.fn(op.ctx)
		if err != nil {
			s.logger.Debug("Serialized operation returned error", map[string]any{
				"user_id":   userID,
				"operation": op.name,
				"error":     err.Error(),
			})
		}

		op.result <- err
		close(op.result)
	}
}

// Shutdown closes all queues and waits for in-flight operations to finish.
// Do must not be called afterwards.
func (s *Sequencer) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.logger.Info("Shutting down sequencer", nil)

	// let callers that passed the closed check finish their enqueue first
	s.senders.Wait()

	s.userQueues.Range(func(_, queueIface any) bool {
		close(queueIface.(chan *operation))
		return true
	})

	s.workers.Wait()
	s.logger.Info("Sequencer shut down", nil)
}
