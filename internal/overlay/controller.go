package overlay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/settings"
	"github.com/lexread/lexread/internal/translate"
)

func olog() *slog.Logger { return logger.Component("overlay") }

// DefaultDebounce is the quiet period after the last edit before a
// translation is requested.
const DefaultDebounce = 800 * time.Millisecond

// SettingsStore is the configuration handle the controller reads and
// listens to. *settings.Store implements it.
type SettingsStore interface {
	Get() settings.AppSettings
	Update(func(*settings.AppSettings)) error
	Subscribe(settings.Listener) func()
}

// Host is the native window capability the controller may request.
type Host interface {
	SetAlwaysOnTop(on bool)
}

type Config struct {
	Settings   SettingsStore
	Translator translate.Translator
	Host       Host
	// Pointer supplies pointer-move/up subscriptions during drags.
	// Defaults to a new PointerHub.
	Pointer  PointerSource
	Clock    Clock
	Viewport Size
	Debounce time.Duration
	// Geometry overrides InitialGeometry.
	Geometry *Geometry
	// Go runs a translation request. Defaults to a plain goroutine.
	Go func(func())
}

// TranslationState is never persisted. IsTranslating and a non-empty Error
// are never set together.
type TranslationState struct {
	SourceText     string
	TranslatedText string
	IsTranslating  bool
	Error          string
}

// Snapshot is a consistent copy of everything the view renders. Version
// increases with every change; a view may drop snapshots older than the
// last one it applied.
type Snapshot struct {
	Version        uint64
	Geometry       Geometry
	Session        SessionKind
	Translation    TranslationState
	TargetLanguage string
	Pinned         bool
	Hidden         bool
}

func (s Snapshot) SourceCount() int {
	return uniseg.GraphemeClusterCount(s.Translation.SourceText)
}

func (s Snapshot) TranslatedCount() int {
	return uniseg.GraphemeClusterCount(s.Translation.TranslatedText)
}

// Controller owns the window geometry, the drag session slot and the
// translation request lifecycle.
type Controller struct {
	store      SettingsStore
	translator translate.Translator
	host       Host
	pointer    PointerSource
	delay      time.Duration
	goFn       func(func())

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	geometry Geometry
	viewport Size
	controls []Rect
	session  DragSession
	release  func()
	hidden   bool
	settings settings.AppSettings
	state    TranslationState
	debounce slotTimer

	generation     uint64
	cancelInFlight context.CancelFunc

	version      uint64
	listeners    map[uint64]func(Snapshot)
	nextListener uint64

	unsubscribeSettings func()
}

func New(cfg Config) (*Controller, error) {
	if cfg.Settings == nil {
		return nil, settings.ErrNoStore
	}
	if cfg.Translator == nil {
		return nil, errors.New("overlay: translator is required")
	}
	if cfg.Pointer == nil {
		cfg.Pointer = NewPointerHub()
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Go == nil {
		cfg.Go = func(fn func()) { go fn() }
	}
	geometry := InitialGeometry()
	if cfg.Geometry != nil {
		geometry = *cfg.Geometry
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		store:      cfg.Settings,
		translator: cfg.Translator,
		host:       cfg.Host,
		pointer:    cfg.Pointer,
		delay:      cfg.Debounce,
		goFn:       cfg.Go,
		ctx:        ctx,
		cancel:     cancel,
		geometry:   geometry.Clamp(cfg.Viewport),
		viewport:   cfg.Viewport,
		debounce:   slotTimer{clock: cfg.Clock},
		listeners:  make(map[uint64]func(Snapshot)),
		settings:   cfg.Settings.Get(),
	}
	c.unsubscribeSettings = cfg.Settings.Subscribe(c.settingsChanged)
	if c.host != nil {
		c.host.SetAlwaysOnTop(c.settings.Pinned)
	}
	return c, nil
}

// Close stops the debounce timer, abandons any in-flight request and
// releases every subscription. The controller ignores all input afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.debounce.cancel()
	c.supersedeLocked()
	release := c.release
	c.release = nil
	c.session = DragSession{}
	unsubscribe := c.unsubscribeSettings
	c.mu.Unlock()

	c.cancel()
	if release != nil {
		release()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Subscribe registers fn for every state change and returns its
// unsubscribe function. fn runs on the goroutine that caused the change.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	c.nextListener++
	id := c.nextListener
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Version:        c.version,
		Geometry:       c.geometry,
		Session:        c.session.Kind,
		Translation:    c.state,
		TargetLanguage: c.settings.TargetLanguage,
		Pinned:         c.settings.Pinned,
		Hidden:         c.hidden,
	}
}

// effects are side effects collected under the lock and run after it is
// released.
type effects struct {
	notify  bool
	release func()
	pin     *bool
	launch  func()
}

// commit must be called with c.mu held. It unlocks.
func (c *Controller) commit(fx effects) {
	var (
		snap      Snapshot
		listeners []func(Snapshot)
	)
	if fx.notify {
		c.version++
		snap = c.snapshotLocked()
		listeners = make([]func(Snapshot), 0, len(c.listeners))
		for id := uint64(1); id <= c.nextListener; id++ {
			if l, ok := c.listeners[id]; ok {
				listeners = append(listeners, l)
			}
		}
	}
	c.mu.Unlock()

	if fx.release != nil {
		fx.release()
	}
	if fx.pin != nil && c.host != nil {
		c.host.SetAlwaysOnTop(*fx.pin)
	}
	for _, l := range listeners {
		l(snap)
	}
	if fx.launch != nil {
		c.goFn(fx.launch)
	}
}

// SetViewport updates the clamping bounds and re-clamps the position.
func (c *Controller) SetViewport(viewport Size) {
	c.mu.Lock()
	c.viewport = viewport
	next := c.geometry
	next.Position = ClampPosition(next.Position, viewport)
	if next == c.geometry {
		c.mu.Unlock()
		return
	}
	c.geometry = next
	c.commit(effects{notify: true})
}

// SetHeaderControls records the window-relative rectangles of interactive
// header widgets. Pointer-downs on them never start a move.
func (c *Controller) SetHeaderControls(controls []Rect) {
	c.mu.Lock()
	c.controls = append(c.controls[:0], controls...)
	c.mu.Unlock()
}

// SetHidden collapses or restores the overlay. Hiding ends any drag.
func (c *Controller) SetHidden(hidden bool) {
	c.mu.Lock()
	if c.closed || c.hidden == hidden {
		c.mu.Unlock()
		return
	}
	c.hidden = hidden
	fx := effects{notify: true}
	if hidden && c.session.Active() {
		fx.release = c.endSessionLocked()
	}
	c.commit(fx)
}

// TogglePin flips the pinned setting through the store. The host
// always-on-top state follows from the resulting settings change.
func (c *Controller) TogglePin() error {
	c.mu.Lock()
	pinned := c.settings.Pinned
	c.mu.Unlock()
	return c.store.Update(func(a *settings.AppSettings) { a.Pinned = !pinned })
}

func (c *Controller) settingsChanged(old, updated settings.AppSettings) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.settings
	c.settings = updated

	var fx effects
	if prev.Pinned != updated.Pinned {
		pinned := updated.Pinned
		fx.pin = &pinned
		fx.notify = true
	}
	if prev.TargetLanguage != updated.TargetLanguage {
		fx.notify = true
	}
	if prev.TargetLanguage != updated.TargetLanguage || prev.Mode != updated.Mode {
		if c.hasSettledTranslationLocked() {
			olog().Debug("Re-translating after settings change", "target", updated.TargetLanguage, "mode", string(updated.Mode))
			fx.launch = c.startLocked(c.state.SourceText, false)
			fx.notify = true
		}
	}
	c.commit(fx)
}

func (c *Controller) hasSettledTranslationLocked() bool {
	return !isBlank(c.state.SourceText) && !c.state.IsTranslating && c.state.TranslatedText != ""
}
