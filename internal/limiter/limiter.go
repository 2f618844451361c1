// Package limiter bounds how many conversions run at once.
//
// A conversion holds its whole input and output in memory, so the server
// admits at most N at a time. Callers that cannot get a slot within the
// configured wait fail with ErrBusy. Drain blocks until in-flight work is
// done, for graceful shutdown.
package limiter

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when no slot frees up within the wait time.
var ErrBusy = errors.New("too many concurrent conversions, please try again later")

// Limiter is a counting semaphore with drain support.
type Limiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu      sync.Mutex
	pending int           // slot holders plus callers still inside Acquire
	idle    chan struct{} // closed while pending == 0
}

// Status is a point-in-time view of the limiter.
type Status struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// New returns a limiter admitting maxConcurrent holders. Non-positive
// arguments are clamped to 1 slot and no waiting.
func New(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if maxWait < 0 {
		maxWait = 0
	}
	idle := make(chan struct{})
	close(idle)
	return &Limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		idle:    idle,
	}
}

// Acquire takes a slot, waiting up to maxWait. It returns ErrBusy on
// timeout or ctx.Err() if ctx ends first. Every nil return must be paired
// with one Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	// Counted before the slot is taken so Drain never sees zero while a
	// caller is about to hold one.
	l.enter()

	select {
	case l.slots <- struct{}{}:
		return nil
	default:
	}
	if l.maxWait == 0 {
		l.leave()
		return ErrBusy
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.leave()
		return ctx.Err()
	case <-timer.C:
		l.leave()
		return ErrBusy
	}
}

// Release returns a slot taken by Acquire.
func (l *Limiter) Release() {
	<-l.slots
	l.leave()
}

func (l *Limiter) enter() {
	l.mu.Lock()
	if l.pending == 0 {
		l.idle = make(chan struct{})
	}
	l.pending++
	l.mu.Unlock()
}

func (l *Limiter) leave() {
	l.mu.Lock()
	l.pending--
	if l.pending == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
}

// Active returns the number of held slots.
func (l *Limiter) Active() int {
	return len(l.slots)
}

func (l *Limiter) Status() Status {
	active := l.Active()
	return Status{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}

// Drain blocks until no slots are held and no Acquire is in progress, or
// until ctx ends. Waiting callers count until they get a slot or give up.
func (l *Limiter) Drain(ctx context.Context) error {
	for {
		l.mu.Lock()
		idle, pending := l.idle, l.pending
		l.mu.Unlock()
		if pending == 0 {
			return nil
		}

		select {
		case <-idle:
			// A new holder may have arrived since; check again.
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
