package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/lexread/lexread/internal/overlay"
)

// dragArea turns fyne drag events into controller pointer events. The
// first drag event reports the pointer-down position; later ones feed the
// shared pointer hub until the drag ends.
type dragArea struct {
	widget.BaseWidget

	bg     *canvas.Rectangle
	icon   *canvas.Image
	cursor desktop.Cursor

	onDown func(overlay.Point) bool
	hub    *overlay.PointerHub

	dragging bool
	last     overlay.Point
}

func newDragArea(hub *overlay.PointerHub, onDown func(overlay.Point) bool, cursor desktop.Cursor, icon fyne.Resource) *dragArea {
	d := &dragArea{
		bg:     canvas.NewRectangle(color.Transparent),
		cursor: cursor,
		onDown: onDown,
		hub:    hub,
	}
	if icon != nil {
		d.icon = canvas.NewImageFromResource(icon)
		d.icon.FillMode = canvas.ImageFillContain
	}
	d.ExtendBaseWidget(d)
	return d
}

func (d *dragArea) CreateRenderer() fyne.WidgetRenderer {
	if d.icon == nil {
		return widget.NewSimpleRenderer(d.bg)
	}
	return widget.NewSimpleRenderer(container.NewStack(d.bg, d.icon))
}

func (d *dragArea) Cursor() desktop.Cursor { return d.cursor }

func (d *dragArea) setFill(c color.Color) {
	if d.bg.FillColor == c {
		return
	}
	d.bg.FillColor = c
	d.bg.Refresh()
}

func (d *dragArea) Dragged(ev *fyne.DragEvent) {
	p := toPoint(ev.AbsolutePosition)
	if !d.dragging {
		d.dragging = true
		if d.onDown != nil {
			d.onDown(p.Sub(overlay.Point{X: ev.Dragged.DX, Y: ev.Dragged.DY}))
		}
	}
	d.last = p
	d.hub.Move(p)
}

func (d *dragArea) DragEnd() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.hub.Up(d.last)
}

// sourceEntry is the editable source pane. A secondary tap pastes from the
// clipboard instead of opening the entry menu.
type sourceEntry struct {
	widget.Entry
	onPaste func()
}

func newSourceEntry(onPaste func()) *sourceEntry {
	e := &sourceEntry{onPaste: onPaste}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *sourceEntry) TappedSecondary(*fyne.PointEvent) {
	if e.onPaste != nil {
		e.onPaste()
	}
}

// copyLabel is the read-only target pane. A secondary tap copies.
type copyLabel struct {
	widget.Label
	onCopy func()
}

func newCopyLabel(onCopy func()) *copyLabel {
	l := &copyLabel{onCopy: onCopy}
	l.Wrapping = fyne.TextWrapWord
	l.ExtendBaseWidget(l)
	return l
}

func (l *copyLabel) TappedSecondary(*fyne.PointEvent) {
	if l.onCopy != nil {
		l.onCopy()
	}
}

// readingEntry is the demo article behind the overlay. Its text cannot be
// changed; finishing a drag selection or a double-click word selection
// reports the selected text.
type readingEntry struct {
	widget.Entry
	article  string
	onSelect func(string)
}

func newReadingEntry(article string, onSelect func(string)) *readingEntry {
	e := &readingEntry{article: article, onSelect: onSelect}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.Text = article
	e.OnChanged = func(s string) {
		if s != e.article {
			e.SetText(e.article)
		}
	}
	e.ExtendBaseWidget(e)
	return e
}

func (e *readingEntry) DragEnd() {
	e.Entry.DragEnd()
	e.emitSelection()
}

func (e *readingEntry) DoubleTapped(ev *fyne.PointEvent) {
	e.Entry.DoubleTapped(ev)
	e.emitSelection()
}

func (e *readingEntry) emitSelection() {
	if sel := e.SelectedText(); sel != "" && e.onSelect != nil {
		e.onSelect(sel)
	}
}
