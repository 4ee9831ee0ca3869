package overlay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lexread/lexread/internal/settings"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs due callbacks on the caller.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

// Pending counts timers that have not fired or been stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type backendCall struct {
	ctx      context.Context
	text     string
	target   string
	mode     settings.Mode
	cred     string
	response chan backendResult
}

type backendResult struct {
	out string
	err error
}

// stubBackend blocks each call until the test replies, unless auto is set.
type stubBackend struct {
	mu    sync.Mutex
	calls []*backendCall
	auto  func(text, target string) (string, error)
	seen  chan *backendCall
}

func newStubBackend() *stubBackend {
	return &stubBackend{seen: make(chan *backendCall, 16)}
}

func (b *stubBackend) Translate(ctx context.Context, text, target string, mode settings.Mode, cred string) (string, error) {
	call := &backendCall{ctx: ctx, text: text, target: target, mode: mode, cred: cred, response: make(chan backendResult, 1)}
	b.mu.Lock()
	b.calls = append(b.calls, call)
	auto := b.auto
	b.mu.Unlock()
	if auto != nil {
		out, err := auto(text, target)
		return out, err
	}
	b.seen <- call
	res := <-call.response
	return res.out, res.err
}

func (b *stubBackend) Calls() []*backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*backendCall(nil), b.calls...)
}

func (b *stubBackend) next(t *testing.T) *backendCall {
	t.Helper()
	select {
	case call := <-b.seen:
		return call
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for backend call")
		return nil
	}
}

func (call *backendCall) reply(out string, err error) {
	call.response <- backendResult{out: out, err: err}
}

type recordingHost struct {
	mu    sync.Mutex
	calls []bool
}

func (h *recordingHost) SetAlwaysOnTop(on bool) {
	h.mu.Lock()
	h.calls = append(h.calls, on)
	h.mu.Unlock()
}

func (h *recordingHost) Calls() []bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bool(nil), h.calls...)
}

type harness struct {
	c       *Controller
	store   *settings.Store
	backend *stubBackend
	clock   *manualClock
	hub     *PointerHub
	host    *recordingHost
	// inflight tracks translation goroutines so tests can wait for
	// dropped results to be processed.
	inflight sync.WaitGroup
}

var testViewport = Size{Width: 1280, Height: 800}

func newHarness(t *testing.T, mutate func(*settings.AppSettings)) *harness {
	t.Helper()
	store, err := settings.Open(&settings.MemoryBackend{}, nil)
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	if err := store.Update(func(a *settings.AppSettings) {
		a.Credential = "test-key"
		if mutate != nil {
			mutate(a)
		}
	}); err != nil {
		t.Fatalf("store.Update: %v", err)
	}

	h := &harness{
		store:   store,
		backend: newStubBackend(),
		clock:   &manualClock{},
		hub:     NewPointerHub(),
		host:    &recordingHost{},
	}
	c, err := New(Config{
		Settings:   store,
		Translator: h.backend,
		Host:       h.host,
		Pointer:    h.hub,
		Clock:      h.clock,
		Viewport:   testViewport,
		Go: func(fn func()) {
			h.inflight.Add(1)
			go func() {
				defer h.inflight.Done()
				fn()
			}()
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	h.c = c
	return h
}

// waitFor polls until cond holds for the controller snapshot.
func waitFor(t *testing.T, c *Controller, what string, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := c.Snapshot()
		if cond(snap) {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; last snapshot %+v", what, snap)
		}
		time.Sleep(time.Millisecond)
	}
}

func settled(s Snapshot) bool { return !s.Translation.IsTranslating }
