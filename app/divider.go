package main

import (
	"image"
	"image/color"

	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// DragDivider is the handle between the editor and the result gutter.
// Dragging resizes the gutter; a double click restores the default share.
type DragDivider struct {
	dragging   bool
	startX     float32
	startWidth int
	tag        bool
	click      gesture.Click
}

var (
	dividerIdle   = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	dividerActive = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
)

const (
	dividerWidthPx = 6
	minGutterWidth = 80
	// the result gutter may take at most this share of the window
	maxGutterShare = 0.75
)

// clampGutter limits a gutter width to what fits a window windowW pixels wide.
func clampGutter(width, windowW int) int {
	hi := int(maxGutterShare * float64(windowW))
	if hi < minGutterWidth {
		hi = minGutterWidth
	}
	switch {
	case width < minGutterWidth:
		return minGutterWidth
	case width > hi:
		return hi
	}
	return width
}

// clicked handles a completed click on the handle; a double click restores
// the default gutter share.
func (d *DragDivider) clicked(numClicks int, width *int, windowW int) {
	if numClicks != 2 {
		return
	}
	d.dragging = false
	*width = clampGutter(int(defaultGutter*float64(windowW)), windowW)
}

// update applies one pointer event to *width.
func (d *DragDivider) update(pe pointer.Event, width *int, windowW int) {
	switch pe.Kind {
	case pointer.Press:
		d.dragging = true
		d.startX = pe.Position.X
		d.startWidth = *width
	case pointer.Drag:
		if d.dragging {
			// the gutter is right of the handle, so moving left widens it
			*width = clampGutter(d.startWidth-int(pe.Position.X-d.startX), windowW)
		}
	case pointer.Release, pointer.Cancel:
		d.dragging = false
	}
}

// Layout draws the handle and applies pending pointer events to *width.
func (d *DragDivider) Layout(gtx layout.Context, width *int, windowW int) layout.Dimensions {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &d.tag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			d.update(pe, width, windowW)
		}
	}
	for {
		ev, ok := d.click.Update(gtx.Source)
		if !ok {
			break
		}
		if ev.Kind == gesture.KindClick {
			d.clicked(ev.NumClicks, width, windowW)
		}
	}

	c := dividerIdle
	if d.dragging {
		c = dividerActive
	}
	rect := image.Rect(0, 0, dividerWidthPx, gtx.Constraints.Max.Y)
	paint.FillShape(gtx.Ops, c, clip.Rect(rect).Op())

	area := clip.Rect(rect).Push(gtx.Ops)
	event.Op(gtx.Ops, &d.tag)
	d.click.Add(gtx.Ops)
	pointer.CursorColResize.Add(gtx.Ops)
	area.Pop()

	return layout.Dimensions{Size: rect.Max}
}
