// Package ui owns the highlight table of one attached editor session.
package ui

import (
	"context"
	"time"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/cptaffe/gridhl/internal/redraw"
	"github.com/cptaffe/gridhl/logger"
	"go.uber.org/zap"
)

// coalesceDelay is the window during which multiple editor flushes are
// batched into a single round of Flusher calls.
const coalesceDelay = 20 * time.Millisecond

// callTimeout is the maximum time Do waits for the UI goroutine.
const callTimeout = 5 * time.Second

// Flusher publishes the table after the editor finishes a screen update.
// Flush runs on the UI goroutine and must not retain t.
type Flusher interface {
	Flush(t *highlight.Table) error
}

// FlushFunc adapts a function to Flusher.
type FlushFunc func(t *highlight.Table) error

func (f FlushFunc) Flush(t *highlight.Table) error { return f(t) }

// UI is the actor for one editor session.
//
// ctx, cancel, cmdCh and done are set once by New and may be used from
// any goroutine.  All remaining fields are owned by run().
type UI struct {
	ctx    context.Context
	cancel context.CancelFunc
	cmdCh  chan func(*UI)
	done   chan struct{}

	// Owned by run(); do not access from other goroutines.
	table      *highlight.Table
	flushers   []Flusher
	dirty      bool
	flushTimer *time.Timer
}

// New starts the UI goroutine.  It exits when ctx is cancelled or Close
// is called.
func New(ctx context.Context, flushers ...Flusher) *UI {
	ctx, cancel := context.WithCancel(ctx)
	u := &UI{
		ctx:      ctx,
		cancel:   cancel,
		cmdCh:    make(chan func(*UI), 64),
		done:     make(chan struct{}),
		table:    highlight.NewTable(),
		flushers: flushers,
	}
	go u.run()
	return u
}

// Close stops the UI goroutine and waits for it to exit.
func (u *UI) Close() {
	u.cancel()
	<-u.done
}

// submit enqueues fn to run in the UI goroutine.  Drops fn silently if the
// UI is already shut down.
func (u *UI) submit(fn func(*UI)) {
	select {
	case u.cmdCh <- fn:
	case <-u.ctx.Done():
	}
}

// call enqueues fn and blocks until it has run, the UI shuts down, or
// callTimeout elapses.
func (u *UI) call(fn func(*UI)) bool {
	done := make(chan struct{})
	u.submit(func(u *UI) {
		fn(u)
		close(done)
	})
	select {
	case <-done:
		return true
	case <-u.ctx.Done():
		return false
	case <-time.After(callTimeout):
		logger.L(u.ctx).Warn("call timed out; ui goroutine unresponsive")
		return false
	}
}

func (u *UI) run() {
	defer close(u.done)
	log := logger.L(u.ctx)

	u.flushTimer = time.NewTimer(coalesceDelay)
	u.flushTimer.Stop()

	for {
		select {
		case fn := <-u.cmdCh:
			fn(u)

		case <-u.flushTimer.C:
			if u.dirty {
				u.doFlush()
			}

		case <-u.ctx.Done():
			u.flushTimer.Stop()
			log.Debug("ui goroutine exiting")
			return
		}
	}
}

func (u *UI) doFlush() {
	u.dirty = false
	for _, f := range u.flushers {
		if err := f.Flush(u.table); err != nil {
			logger.L(u.ctx).Error("flush", zap.Error(err))
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// ---- public API (safe to call from any goroutine) ----

// Redraw applies one redraw notification.  A flush event in the batch
// arms the coalesce timer; malformed events are logged and skipped.
func (u *UI) Redraw(batch [][]any) {
	u.submit(func(u *UI) {
		flush, err := redraw.Apply(u.table, batch)
		if err != nil {
			logger.L(u.ctx).Warn("redraw", zap.Error(err))
		}
		if flush {
			u.dirty = true
			resetTimer(u.flushTimer, coalesceDelay)
		}
	})
}

// Post runs fn on the UI goroutine.  Background workers use it to hand
// results back without touching UI state themselves.
func (u *UI) Post(fn func()) {
	u.submit(func(*UI) { fn() })
}

// Do runs fn on the UI goroutine with the table and waits for it.
// Returns false if the UI shut down or stalled first.
func (u *UI) Do(fn func(t *highlight.Table)) bool {
	return u.call(func(u *UI) { fn(u.table) })
}

// Reset replaces the table with an empty one, as on a new attach.
func (u *UI) Reset() {
	u.submit(func(u *UI) {
		u.table = highlight.NewTable()
		u.dirty = false
	})
}

// AddFlusher registers f for subsequent flushes.
func (u *UI) AddFlusher(f Flusher) {
	u.submit(func(u *UI) {
		u.flushers = append(u.flushers, f)
	})
}
