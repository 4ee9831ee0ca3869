package overlay

// SessionKind tags the single active drag session slot.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionMoving
	SessionResizing
	SessionSplitting
)

func (k SessionKind) String() string {
	switch k {
	case SessionMoving:
		return "moving"
	case SessionResizing:
		return "resizing"
	case SessionSplitting:
		return "splitting"
	default:
		return "none"
	}
}

// DragSession holds the anchors captured at pointer-down. Only the fields
// of the active kind are meaningful.
type DragSession struct {
	Kind SessionKind

	// Moving: pointer minus window position.
	AnchorOffset Point

	// Resizing
	AnchorSize    Size
	AnchorPointer Point

	// Splitting
	AnchorRatio    float32
	AnchorPointerY float32
}

func (s DragSession) Active() bool { return s.Kind != SessionNone }

// beginSession maps a pointer-down on region to a new session. ok is false
// when the region starts nothing or a guard rejects it.
func beginSession(g Geometry, region Region, p Point, pinned bool) (DragSession, bool) {
	switch region {
	case RegionHeader:
		if pinned {
			return DragSession{}, false
		}
		return DragSession{Kind: SessionMoving, AnchorOffset: p.Sub(g.Position)}, true
	case RegionResizeHandle:
		return DragSession{Kind: SessionResizing, AnchorSize: g.Size, AnchorPointer: p}, true
	case RegionDivider:
		return DragSession{Kind: SessionSplitting, AnchorRatio: g.SplitRatio, AnchorPointerY: p.Y}, true
	default:
		return DragSession{}, false
	}
}

// apply returns g after the pointer moved to p.
func (s DragSession) apply(g Geometry, p Point, viewport Size) Geometry {
	switch s.Kind {
	case SessionMoving:
		g.Position = ClampPosition(p.Sub(s.AnchorOffset), viewport)
	case SessionResizing:
		delta := p.Sub(s.AnchorPointer)
		g.Size = ClampSize(Size{
			Width:  s.AnchorSize.Width + delta.X,
			Height: s.AnchorSize.Height + delta.Y,
		})
	case SessionSplitting:
		content := g.ContentHeight()
		if content <= 0 {
			return g
		}
		g.SplitRatio = ClampSplit(s.AnchorRatio + (p.Y-s.AnchorPointerY)/content)
	}
	return g
}
