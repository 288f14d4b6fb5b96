package main

import (
	"image"
	"image/color"
	"strconv"

	"bares/app/lang"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var (
	gutterBg       = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	lineNumberFg   = color.NRGBA{R: 0x85, G: 0x85, B: 0x85, A: 0xFF}
	gutterEdge     = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	resultColor    = color.NRGBA{R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF} // teal
	resultErrColor = color.NRGBA{R: 0xF4, G: 0x47, B: 0x47, A: 0xFF} // red
)

const (
	lineNumberWidth   = unit.Dp(50)
	lineNumberPadding = unit.Dp(4)
	resultPadding     = unit.Dp(8)
	fallbackLineH     = 16
)

// MeasureLineHeight returns the rendered line height for the given theme.
func MeasureLineHeight(gtx layout.Context, th *material.Theme) int {
	if h, _ := measureLineMetrics(gtx, th); h > 0 {
		return h
	}
	return gtx.Sp(th.TextSize)
}

// visibleRange returns the half-open range of line indexes that fit in a
// gutter of the given height.
func visibleRange(lineCount, scrollY, lineHeight, height int) (first, last int) {
	first = scrollY / lineHeight
	if first < 0 {
		first = 0
	}
	last = first + height/lineHeight + 2
	if last > lineCount {
		last = lineCount
	}
	return first, last
}

// lineNumberText right-aligns n to the width of lineCount, at least two digits.
func lineNumberText(n, lineCount int) string {
	s := strconv.Itoa(n)
	width := len(strconv.Itoa(lineCount))
	if width < 2 {
		width = 2
	}
	for len(s) < width {
		s = " " + s
	}
	return s
}

// drawRowLabel renders a single-line label in a row of the gutter at
// (x, y), clipped to w by lineHeight.
func drawRowLabel(gtx layout.Context, lbl material.LabelStyle, x, y, w, lineHeight int) {
	lbl.MaxLines = 1
	off := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
	cl := clip.Rect(image.Rect(0, 0, w, lineHeight)).Push(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints = layout.Exact(image.Pt(w, lineHeight))
	lbl.Layout(lgtx)
	cl.Pop()
	off.Pop()
}

// LayoutLeftGutter renders line numbers in a fixed-width column. scrollY is
// the vertical scroll offset and topPad the editor's top inset, both in
// pixels.
func LayoutLeftGutter(gtx layout.Context, th *material.Theme, lineCount int, scrollY int, lineHeight int, topPad int) layout.Dimensions {
	width := gtx.Dp(lineNumberWidth)
	height := gtx.Constraints.Max.Y
	paint.FillShape(gtx.Ops, gutterBg, clip.Rect(image.Rect(0, 0, width, height)).Op())

	if lineHeight <= 0 {
		lineHeight = fallbackLineH
	}
	first, last := visibleRange(lineCount, scrollY, lineHeight, height)
	for i := first; i < last; i++ {
		y := topPad + i*lineHeight - scrollY
		if y+lineHeight < 0 || y > height {
			continue
		}
		lbl := material.Label(th, th.TextSize, lineNumberText(i+1, lineCount))
		lbl.Color = lineNumberFg
		lbl.Alignment = text.End
		drawRowLabel(gtx, lbl, 0, y, width-gtx.Dp(lineNumberPadding), lineHeight)
	}

	paint.FillShape(gtx.Ops, gutterEdge, clip.Rect(image.Rect(width-1, 0, width, height)).Op())
	return layout.Dimensions{Size: image.Pt(width, height)}
}

// LayoutRightGutter renders the value or error message of every visible line.
// widthPx is the gutter width in pixels.
func LayoutRightGutter(gtx layout.Context, th *material.Theme, results []lang.EvalResult, scrollY int, lineHeight int, topPad int, widthPx int) layout.Dimensions {
	height := gtx.Constraints.Max.Y
	if lineHeight <= 0 {
		lineHeight = fallbackLineH
	}

	pad := gtx.Dp(resultPadding)
	first, last := visibleRange(len(results), scrollY, lineHeight, height)
	for i := first; i < last; i++ {
		r := results[i]
		y := topPad + i*lineHeight - scrollY
		if r.Text == "" || y+lineHeight < 0 || y > height {
			continue
		}
		lbl := material.Label(th, th.TextSize, r.Text)
		lbl.Color = resultColor
		if r.IsErr {
			lbl.Color = resultErrColor
		}
		lbl.Alignment = text.Start
		drawRowLabel(gtx, lbl, pad, y, widthPx-2*pad, lineHeight)
	}

	return layout.Dimensions{Size: image.Pt(widthPx, height)}
}
