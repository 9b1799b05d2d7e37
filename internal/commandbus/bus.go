// Package commandbus provides an in-memory, asynchronous command bus for
// outbound notification commands. Commands are dispatched through a
// buffered channel and delivered to subscribers by a worker pool.
package commandbus

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrBusFull is returned when the command buffer is full and the command
// could not be enqueued.
var ErrBusFull = errors.New("commandbus: buffer full")

const (
	defaultWorkers    = 3
	defaultBufferSize = 100
)

// Bus is the interface for emitting commands and managing subscribers.
type Bus interface {
	Sender

	// Subscribe registers a listener that is called for every emitted
	// command (broadcast). Subscribe must be called before the first
	// SendAsAdmin; behavior is undefined if called after Close.
	Subscribe(listener Listener)

	// Close stops accepting new commands and waits for pending commands to
	// be delivered.
	Close()
}

type inMemoryBus struct {
	ch        chan Command
	listeners []Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	workers   int
}

// New creates an in-memory Bus with the given number of worker goroutines.
// workers <= 0 falls back to the default of 3.
func New(workers int) Bus {
	if workers <= 0 {
		workers = defaultWorkers
	}
	b := &inMemoryBus{
		ch:      make(chan Command, defaultBufferSize),
		workers: workers,
	}
	b.startWorkers()
	return b
}

func (b *inMemoryBus) startWorkers() {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for cmd := range b.ch {
				b.deliver(cmd)
			}
		}()
	}
}

// deliver invokes every subscriber for cmd. Each listener runs with panic
// recovery so one bad subscriber cannot take out the others.
func (b *inMemoryBus) deliver(cmd Command) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("commandbus: listener panicked for command %q: %v", cmd.Type, r)
				}
			}()
			l(cmd)
		}()
	}
}

// SendAsAdmin enqueues a command without waiting for downstream
// acknowledgement. It never blocks: a full buffer returns ErrBusFull
// instead of queueing, so the caller can surface the lost emission. An
// empty ID is filled in with a fresh UUID; the caller's correlation ID is
// never touched.
func (b *inMemoryBus) SendAsAdmin(cmd Command) error {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if cmd.IssuedAt.IsZero() {
		cmd.IssuedAt = time.Now()
	}

	select {
	case b.ch <- cmd:
		return nil
	default:
		return fmt.Errorf("%w: command %q (correlation %s) not enqueued", ErrBusFull, cmd.Type, cmd.CorrelationID)
	}
}

// Subscribe adds a listener to receive all future commands.
func (b *inMemoryBus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

// Close drains and closes the command channel, then waits for the workers.
func (b *inMemoryBus) Close() {
	close(b.ch)
	b.wg.Wait()
}
