package main

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGuarded(t *testing.T) {
	var scope atomic.Value
	guarded("translate.request", func(s string, r any) {
		scope.Store(s)
		if r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}, func() { panic("boom") })
	if scope.Load() != "translate.request" {
		t.Fatalf("reporter got scope %v", scope.Load())
	}

	called := false
	guarded("render", func(string, any) { called = true }, func() {})
	if called {
		t.Fatalf("reporter called without a panic")
	}

	guarded("no.reporter", nil, func() { panic("ignored") })
}

func TestSafeGoRecoversPanic(t *testing.T) {
	var done atomic.Bool
	safeGo("test.safe_go", func() {
		defer done.Store(true)
		panic("boom")
	})
	waitFor(t, "guarded goroutine", done.Load)
}

func TestOverlayAppSafeGoCountsPanics(t *testing.T) {
	a := newTestOverlay(t, echoTranslator{})
	a.safeGo("test.request.panic", func() { panic("boom") })
	waitFor(t, "panic report", func() bool { return a.panics.Load() > 0 })
}

func TestOverlayAppSafeDoCountsPanics(t *testing.T) {
	a := newTestOverlay(t, echoTranslator{})
	a.safeDo("test.render.panic", func() { panic("boom") })
	waitFor(t, "panic report", func() bool { return a.panics.Load() > 0 })
}
