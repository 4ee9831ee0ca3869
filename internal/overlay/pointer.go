package overlay

import "sync"

// PointerSource hands out scoped pointer subscriptions. The returned
// function releases the subscription and is safe to call more than once.
type PointerSource interface {
	Subscribe(onMove, onUp func(Point)) (release func())
}

// PointerHub fans pointer-move and pointer-up events out to the current
// subscribers. Handlers run outside the hub lock, so they may release their
// own subscription.
type PointerHub struct {
	mu     sync.Mutex
	subs   map[uint64]pointerSub
	nextID uint64
}

type pointerSub struct {
	onMove, onUp func(Point)
}

func NewPointerHub() *PointerHub {
	return &PointerHub{subs: make(map[uint64]pointerSub)}
}

func (h *PointerHub) Subscribe(onMove, onUp func(Point)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = pointerSub{onMove: onMove, onUp: onUp}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Active is the number of live subscriptions.
func (h *PointerHub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *PointerHub) Move(p Point) {
	for _, s := range h.snapshot() {
		if s.onMove != nil {
			s.onMove(p)
		}
	}
}

func (h *PointerHub) Up(p Point) {
	for _, s := range h.snapshot() {
		if s.onUp != nil {
			s.onUp(p)
		}
	}
}

func (h *PointerHub) snapshot() []pointerSub {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]pointerSub, 0, len(h.subs))
	for _, s := range h.subs {
		out = append(out, s)
	}
	return out
}
