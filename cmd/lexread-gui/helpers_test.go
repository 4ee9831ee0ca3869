package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/lexread/lexread/internal/overlay"
	"github.com/lexread/lexread/internal/settings"
	"github.com/lexread/lexread/internal/translate"
)

var testViewport = fyne.NewSize(1280, 800)

// echoTranslator returns the source text tagged with the target language.
type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text, target string, _ settings.Mode, _ string) (string, error) {
	return "[" + target + "] " + strings.ToUpper(text), nil
}

type memorySecrets struct{ key string }

func (m *memorySecrets) Get() (string, error) { return m.key, nil }
func (m *memorySecrets) Set(key string) error { m.key = key; return nil }

func newTestStore(t *testing.T, mutate func(*settings.AppSettings)) *settings.Store {
	t.Helper()
	store, err := settings.Open(&settings.MemoryBackend{}, &memorySecrets{})
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	if mutate != nil {
		if err := store.Update(mutate); err != nil {
			t.Fatalf("store.Update: %v", err)
		}
	}
	return store
}

func newTestOverlay(t *testing.T, tr translate.Translator) *overlayApp {
	t.Helper()
	return newTestOverlayWithStore(t, tr, newTestStore(t, nil))
}

func newTestOverlayWithStore(t *testing.T, tr translate.Translator, store *settings.Store) *overlayApp {
	t.Helper()
	fa := test.NewTempApp(t)
	w := fa.NewWindow("test")
	a, err := newOverlayApp(fa, w, store, tr)
	if err != nil {
		t.Fatalf("newOverlayApp: %v", err)
	}
	t.Cleanup(a.shutdown)
	a.layout(testViewport)
	a.render(a.ctrl.Snapshot())
	return a
}

// settle waits for the controller to reach cond and renders the result.
func settle(t *testing.T, a *overlayApp, cond func(overlay.Snapshot) bool) overlay.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := a.ctrl.Snapshot()
		if cond(snap) {
			a.render(snap)
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("controller did not settle: %+v", snap)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func translated(s overlay.Snapshot) bool {
	return !s.Translation.IsTranslating && s.Translation.TranslatedText != ""
}

func stubClipboard(t *testing.T, read func() (string, error), write func(string) error) {
	t.Helper()
	oldRead, oldWrite := readClipboard, writeClipboard
	t.Cleanup(func() {
		readClipboard, writeClipboard = oldRead, oldWrite
	})
	if read != nil {
		readClipboard = read
	}
	if write != nil {
		writeClipboard = write
	}
}

func center(r overlay.Rect) overlay.Point {
	return overlay.Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// drag replays a fyne drag from start by delta on area.
func drag(area *dragArea, start overlay.Point, dx, dy float32) {
	area.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(start.X+dx, start.Y+dy)},
		Dragged:    fyne.NewDelta(dx, dy),
	})
	area.DragEnd()
}
