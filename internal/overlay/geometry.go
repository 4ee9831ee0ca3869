package overlay

// Window limits, in viewport units.
const (
	MinWidth  float32 = 320
	MinHeight float32 = 250

	MinSplitRatio float32 = 0.2
	MaxSplitRatio float32 = 0.8

	// HeaderHeight is excluded from the pane area when splitting.
	HeaderHeight float32 = 30

	// How far the window may be parked off the left and right edges, and
	// how much of it must stay above the bottom edge.
	LeftParkMargin   float32 = 200
	RightKeepVisible float32 = 100
	BottomKeepHeader float32 = 30

	DividerThickness float32 = 8
	ResizeHandleSize float32 = 16
)

type Point struct{ X, Y float32 }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

type Size struct{ Width, Height float32 }

type Rect struct {
	Origin Point
	Size   Size
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

// Translate shifts r by offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{Origin: r.Origin.Add(offset), Size: r.Size}
}

// Geometry is the window placement and the share of the pane area given to
// the source pane.
type Geometry struct {
	Position   Point
	Size       Size
	SplitRatio float32
}

func InitialGeometry() Geometry {
	return Geometry{
		Position:   Point{X: 20, Y: 20},
		Size:       Size{Width: 647, Height: 400},
		SplitRatio: 0.4,
	}
}

// ContentHeight is the height shared by the two panes.
func (g Geometry) ContentHeight() float32 {
	return g.Size.Height - HeaderHeight
}

// SourcePaneHeight is the height above the divider.
func (g Geometry) SourcePaneHeight() float32 {
	return g.ContentHeight() * g.SplitRatio
}

func (g Geometry) Bounds() Rect {
	return Rect{Origin: g.Position, Size: g.Size}
}

func (g Geometry) HeaderRect() Rect {
	return Rect{Origin: g.Position, Size: Size{Width: g.Size.Width, Height: HeaderHeight}}
}

func (g Geometry) DividerRect() Rect {
	y := g.Position.Y + HeaderHeight + g.SourcePaneHeight() - DividerThickness/2
	return Rect{
		Origin: Point{X: g.Position.X, Y: y},
		Size:   Size{Width: g.Size.Width, Height: DividerThickness},
	}
}

func (g Geometry) ResizeHandleRect() Rect {
	return Rect{
		Origin: Point{
			X: g.Position.X + g.Size.Width - ResizeHandleSize,
			Y: g.Position.Y + g.Size.Height - ResizeHandleSize,
		},
		Size: Size{Width: ResizeHandleSize, Height: ResizeHandleSize},
	}
}

// ClampPosition keeps the window reachable inside viewport. When the
// viewport is too small for both bounds, the lower bound wins. An empty
// viewport means the bounds are not known yet and p is returned as is.
func ClampPosition(p Point, viewport Size) Point {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return p
	}
	p.X = max(min(p.X, viewport.Width-RightKeepVisible), -LeftParkMargin)
	p.Y = max(min(p.Y, viewport.Height-BottomKeepHeader), 0)
	return p
}

// ClampSize applies the minimum size. There is no maximum.
func ClampSize(s Size) Size {
	s.Width = max(s.Width, MinWidth)
	s.Height = max(s.Height, MinHeight)
	return s
}

func ClampSplit(r float32) float32 {
	if r != r { // NaN
		return MinSplitRatio
	}
	return max(min(r, MaxSplitRatio), MinSplitRatio)
}

// Clamp returns g with every invariant applied.
func (g Geometry) Clamp(viewport Size) Geometry {
	g.Size = ClampSize(g.Size)
	g.Position = ClampPosition(g.Position, viewport)
	g.SplitRatio = ClampSplit(g.SplitRatio)
	return g
}

// Region is what lies under a pointer.
type Region int

const (
	RegionOutside Region = iota
	RegionBody
	RegionHeader
	RegionHeaderControl
	RegionDivider
	RegionResizeHandle
)

func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionHeader:
		return "header"
	case RegionHeaderControl:
		return "header_control"
	case RegionDivider:
		return "divider"
	case RegionResizeHandle:
		return "resize_handle"
	default:
		return "outside"
	}
}

// HitTest classifies p. controls are window-relative rectangles of
// interactive header widgets.
func (g Geometry) HitTest(p Point, controls []Rect) Region {
	if !g.Bounds().Contains(p) {
		return RegionOutside
	}
	if g.ResizeHandleRect().Contains(p) {
		return RegionResizeHandle
	}
	if g.HeaderRect().Contains(p) {
		for _, c := range controls {
			if c.Translate(g.Position).Contains(p) {
				return RegionHeaderControl
			}
		}
		return RegionHeader
	}
	if g.DividerRect().Contains(p) {
		return RegionDivider
	}
	return RegionBody
}
