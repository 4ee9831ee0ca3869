// Package cleanup collects shutdown hooks for the CLI and the overlay
// window. Hooks run newest first so resources close in reverse of the order
// they were opened.
package cleanup

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

type hook struct {
	name string
	fn   func() error
}

var (
	mu    sync.Mutex
	hooks []hook
)

// Register adds a named hook. A nil fn is ignored.
func Register(name string, fn func() error) {
	if fn == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook{name: name, fn: fn})
	mu.Unlock()
}

// RegisterCloser registers c.Close under name.
func RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	Register(name, c.Close)
}

// Pending reports how many hooks are waiting to run.
func Pending() int {
	mu.Lock()
	defer mu.Unlock()
	return len(hooks)
}

// RunAll drains the registry and runs every hook, even after a failure or a
// panic. Failures are joined and prefixed with the hook name.
func RunAll() error {
	mu.Lock()
	local := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := run(local[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", local[i].name, err))
		}
	}
	return errors.Join(errs...)
}

func run(h hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.fn()
}
