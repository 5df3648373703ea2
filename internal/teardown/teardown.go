// Package teardown runs registered callbacks once when the process is about
// to go away, either because it received a termination signal or because the
// user closed the client abruptly.
package teardown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ayoisaiah/pagetime/internal/osutil"
)

// Signals are the notifications treated as teardown.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Hook collects teardown callbacks and runs them at most once.
type Hook struct {
	exit      func(code int)
	sigCh     chan os.Signal
	callbacks []func()
	listen    sync.Once
	mu        sync.Mutex
	fired     bool
}

// New returns a hook that exits the process with exit after a signal.
func New(exit func(code int)) *Hook {
	if exit == nil {
		exit = os.Exit
	}

	return &Hook{exit: exit}
}

// Register adds fn to the callbacks run on teardown. Callbacks run in the
// order they were registered.
func (h *Hook) Register(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.callbacks = append(h.callbacks, fn)
}

// Listen installs the signal handler. Only the first call has any effect.
// After a signal the callbacks run and the process exits.
func (h *Hook) Listen() {
	h.listen.Do(func() {
		ch := make(chan os.Signal, 1)

		h.mu.Lock()
		h.sigCh = ch
		h.mu.Unlock()

		signal.Notify(ch, Signals...)

		go func() {
			if _, ok := <-ch; !ok {
				return
			}

			h.Trigger()

			h.exit(int(osutil.ExitOK))
		}()
	})
}

// Stop removes the signal handler.
func (h *Hook) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sigCh == nil {
		return
	}

	signal.Stop(h.sigCh)
	close(h.sigCh)
	h.sigCh = nil
}

// Trigger runs the callbacks unless they already ran. It reports whether
// this call ran them.
func (h *Hook) Trigger() bool {
	h.mu.Lock()

	if h.fired {
		h.mu.Unlock()
		return false
	}

	h.fired = true
	callbacks := append([]func(){}, h.callbacks...)

	h.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}

	return true
}

// Fired reports whether the callbacks have run.
func (h *Hook) Fired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.fired
}
