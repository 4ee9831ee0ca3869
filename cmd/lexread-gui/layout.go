package main

import (
	"fyne.io/fyne/v2"

	"github.com/lexread/lexread/internal/overlay"
)

const (
	controlSize    float32 = 24
	controlGap     float32 = 4
	captionHeight  float32 = 22
	panePadding    float32 = 6
	restoreWidth   float32 = 120
	restoreHeight  float32 = 32
	toastHeight    float32 = 36
	toastMinWidth  float32 = 180
	toastBottomGap float32 = 24
)

// panelRects are the viewport rectangles of every overlay part for one
// geometry. Controls are relative to the overlay origin, as the hit test
// expects them.
type panelRects struct {
	Panel    overlay.Rect
	Header   overlay.Rect
	Title    overlay.Rect
	Source   overlay.Rect
	Divider  overlay.Rect
	Target   overlay.Rect
	Handle   overlay.Rect
	Controls [3]overlay.Rect // pin, settings, hide
}

const (
	controlPin = iota
	controlSettings
	controlHide
)

func computePanel(g overlay.Geometry) panelRects {
	r := panelRects{
		Panel:   g.Bounds(),
		Header:  g.HeaderRect(),
		Divider: g.DividerRect(),
		Handle:  g.ResizeHandleRect(),
	}

	x := g.Size.Width - controlGap
	y := (overlay.HeaderHeight - controlSize) / 2
	for i := len(r.Controls) - 1; i >= 0; i-- {
		x -= controlSize
		r.Controls[i] = overlay.Rect{
			Origin: overlay.Point{X: x, Y: y},
			Size:   overlay.Size{Width: controlSize, Height: controlSize},
		}
		x -= controlGap
	}
	r.Title = overlay.Rect{
		Origin: overlay.Point{X: g.Position.X + panePadding, Y: g.Position.Y},
		Size:   overlay.Size{Width: max(x-panePadding, 0), Height: overlay.HeaderHeight},
	}

	top := g.Position.Y + overlay.HeaderHeight
	split := top + g.SourcePaneHeight()
	r.Source = overlay.Rect{
		Origin: overlay.Point{X: g.Position.X, Y: top},
		Size:   overlay.Size{Width: g.Size.Width, Height: max(split-top-overlay.DividerThickness/2, 0)},
	}
	targetTop := split + overlay.DividerThickness/2
	r.Target = overlay.Rect{
		Origin: overlay.Point{X: g.Position.X, Y: targetTop},
		Size:   overlay.Size{Width: g.Size.Width, Height: max(g.Position.Y+g.Size.Height-targetTop, 0)},
	}
	return r
}

// headerControls lists the control rectangles for the controller.
func (r panelRects) headerControls() []overlay.Rect {
	return r.Controls[:]
}

// control returns control i in viewport coordinates.
func (r panelRects) control(i int) overlay.Rect {
	return r.Controls[i].Translate(r.Panel.Origin)
}

// restoreRect keeps the restore button where the header was, inside the
// viewport.
func restoreRect(g overlay.Geometry, viewport overlay.Size) overlay.Rect {
	p := overlay.Point{X: max(g.Position.X, 0), Y: max(g.Position.Y, 0)}
	if viewport.Width > 0 {
		p.X = min(p.X, max(viewport.Width-restoreWidth, 0))
	}
	if viewport.Height > 0 {
		p.Y = min(p.Y, max(viewport.Height-restoreHeight, 0))
	}
	return overlay.Rect{Origin: p, Size: overlay.Size{Width: restoreWidth, Height: restoreHeight}}
}

func toastRect(viewport overlay.Size, textWidth float32) overlay.Rect {
	w := max(textWidth+2*panePadding*2, toastMinWidth)
	return overlay.Rect{
		Origin: overlay.Point{
			X: (viewport.Width - w) / 2,
			Y: max(viewport.Height-toastHeight-toastBottomGap, 0),
		},
		Size: overlay.Size{Width: w, Height: toastHeight},
	}
}

func toPoint(p fyne.Position) overlay.Point {
	return overlay.Point{X: p.X, Y: p.Y}
}

func toSize(s fyne.Size) overlay.Size {
	return overlay.Size{Width: s.Width, Height: s.Height}
}

// place moves and resizes obj onto r.
func place(obj fyne.CanvasObject, r overlay.Rect) {
	obj.Move(fyne.NewPos(r.Origin.X, r.Origin.Y))
	obj.Resize(fyne.NewSize(r.Size.Width, r.Size.Height))
}

// inset shrinks r by d on every side.
func inset(r overlay.Rect, d float32) overlay.Rect {
	return overlay.Rect{
		Origin: overlay.Point{X: r.Origin.X + d, Y: r.Origin.Y + d},
		Size:   overlay.Size{Width: max(r.Size.Width-2*d, 0), Height: max(r.Size.Height-2*d, 0)},
	}
}
