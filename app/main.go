package main

import (
	"image"
	"image/color"
	"log"
	"os"

	"bares/app/lang"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	editorBg       = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	editorFg       = color.NRGBA{R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}
	caretLineBg    = color.NRGBA{R: 0x2A, G: 0x2D, B: 0x32, A: 0xFF}
	selectionColor = color.NRGBA{R: 0x26, G: 0x4F, B: 0x78, A: 0xFF}
	hintColor      = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
)

const (
	editorInset   = unit.Dp(4)
	topSpacer     = unit.Dp(6)
	minTextSize   = unit.Sp(8)
	maxTextSize   = unit.Sp(48)
	textSizeStep  = unit.Sp(2)
	defaultGutter = 1.0 / 3.0 // result gutter share of the window width
)

func main() {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("bares"), app.Size(unit.Dp(1024), unit.Dp(768)))
		wb := newWorkbench(w)
		if len(os.Args) > 1 {
			if err := wb.es.LoadFile(os.Args[1]); err != nil {
				log.Printf("Failed to open %s: %v", os.Args[1], err)
			}
		}
		if err := wb.run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// workbench is the editor window: expressions on the left, one result per
// line on the right.
type workbench struct {
	w    *app.Window
	th   *material.Theme
	es   *EditorState
	expl *explorer.Explorer

	// results are cached per line until the line's text changes
	evalState lang.EvalState

	gutterRatio float64
	gutterWidth int
	divider     DragDivider
	shortcutTag bool

	openCh   <-chan FileResult
	saveCh   <-chan SaveResult
	exportCh <-chan SaveResult
}

func newWorkbench(w *app.Window) *workbench {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Face = "Go Mono"
	th.TextSize = unit.Sp(14)

	wb := &workbench{
		w:           w,
		th:          th,
		es:          NewEditorState(),
		expl:        explorer.NewExplorer(w),
		gutterRatio: defaultGutter,
	}
	registerWebCallbacks(wb.es, w)
	return wb
}

func (wb *workbench) run() error {
	// Window events are forwarded over a channel and acknowledged so the
	// explorer can observe them before the next one is read.
	events := make(chan event.Event)
	acks := make(chan struct{})
	go func() {
		for {
			ev := wb.w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()

	wb.updateTitle()

	var ops op.Ops
	for {
		select {
		case res := <-wb.openCh:
			wb.openCh = nil
			if res.Err != nil {
				log.Printf("Open error: %v", res.Err)
			} else {
				wb.es.SetContent(res.Data)
				wb.updateTitle()
			}
			wb.w.Invalidate()

		case res := <-wb.saveCh:
			wb.saveCh = nil
			if res.Err != nil {
				log.Printf("Save error: %v", res.Err)
			} else {
				if res.Path != "" {
					wb.es.FilePath = res.Path
				}
				wb.es.Dirty = false
				wb.updateTitle()
			}
			wb.w.Invalidate()

		case res := <-wb.exportCh:
			wb.exportCh = nil
			if res.Err != nil {
				log.Printf("Export error: %v", res.Err)
			}

		case e := <-events:
			wb.expl.ListenEvents(e)
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				return e.Err
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				wb.frame(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
}

func (wb *workbench) updateTitle() {
	wb.w.Option(app.Title(wb.es.Title()))
}

// frame handles input and lays out one frame.
func (wb *workbench) frame(gtx C) {
	windowW := gtx.Constraints.Max.X
	// a drag since the last frame moves the ratio; otherwise the gutter
	// follows the window size
	if wb.gutterWidth != 0 && wb.gutterWidth != int(wb.gutterRatio*float64(windowW)) {
		wb.gutterRatio = float64(wb.gutterWidth) / float64(windowW)
	}
	wb.gutterWidth = int(wb.gutterRatio * float64(windowW))

	wb.handleShortcuts(gtx)
	wb.handleEditorEvents(gtx)

	results := wb.evalState.EvalAll(wb.es.Lines())

	paint.FillShape(gtx.Ops, editorBg, clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Op())

	lineHeight := MeasureLineHeight(gtx, wb.th)
	topPad := gtx.Dp(editorInset)

	caretLine, _ := wb.es.Editor.CaretPos()
	caretY := gtx.Dp(topSpacer) + topPad + caretLine*lineHeight
	paint.FillShape(gtx.Ops, caretLineBg,
		clip.Rect(image.Rect(0, caretY, gtx.Constraints.Max.X, caretY+lineHeight)).Op())

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(layout.Spacer{Height: topSpacer}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return wb.layoutPanes(gtx, results, lineHeight, topPad, windowW)
		}),
	)
}

// layoutPanes lays out line numbers | editor | divider | results.
func (wb *workbench) layoutPanes(gtx C, results []lang.EvalResult, lineHeight, topPad, windowW int) D {
	const scrollY = 0
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return LayoutLeftGutter(gtx, wb.th, wb.es.LineCount(), scrollY, lineHeight, topPad)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layoutEditor(gtx, wb.th, wb.es, results)
		}),
		layout.Rigid(func(gtx C) D {
			return wb.divider.Layout(gtx, &wb.gutterWidth, windowW)
		}),
		layout.Rigid(func(gtx C) D {
			return LayoutRightGutter(gtx, wb.th, results, scrollY, lineHeight, topPad, wb.gutterWidth)
		}),
	)
}

func (wb *workbench) handleShortcuts(gtx C) {
	event.Op(gtx.Ops, &wb.shortcutTag)
	for {
		ev, ok := gtx.Event(
			key.Filter{Required: key.ModShortcut, Name: "O"},
			key.Filter{Required: key.ModShortcut, Name: "S"},
			key.Filter{Required: key.ModShortcut, Name: "E"},
			key.Filter{Required: key.ModShortcut, Name: "="},
			key.Filter{Required: key.ModShortcut, Name: "-"},
			key.Filter{Required: key.ModShortcut, Name: "A"},
		)
		if !ok {
			return
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case "O":
			if wb.openCh == nil {
				wb.openCh = OpenFileAsync(wb.expl)
			}
		case "S":
			if wb.saveCh != nil {
				break
			}
			content := []byte(wb.es.Editor.Text())
			if wb.es.FilePath != "" {
				wb.saveCh = SavePathAsync(wb.es.FilePath, content)
			} else {
				wb.saveCh = SaveFileAsync(wb.expl, content, "expressions.txt")
			}
		case "E":
			if wb.exportCh == nil {
				wb.exportCh = SaveFileAsync(wb.expl, ResultsText(wb.evalState.EvalAll(wb.es.Lines())), "results.txt")
			}
		case "=":
			if wb.th.TextSize < maxTextSize {
				wb.th.TextSize += textSizeStep
			}
		case "-":
			if wb.th.TextSize > minTextSize {
				wb.th.TextSize -= textSizeStep
			}
		case "A":
			wb.es.Editor.SetCaret(wb.es.Editor.Len(), 0)
		}
	}
}

func (wb *workbench) handleEditorEvents(gtx C) {
	for {
		ev, ok := wb.es.Editor.Update(gtx)
		if !ok {
			return
		}
		if _, ok := ev.(widget.ChangeEvent); ok && !wb.es.Dirty {
			wb.es.Dirty = true
			wb.updateTitle()
		}
	}
}

func layoutEditor(gtx C, th *material.Theme, es *EditorState, results []lang.EvalResult) D {
	ed := material.Editor(th, &es.Editor, "")
	ed.Font = font.Font{Typeface: "Go Mono"}
	ed.Color = color.NRGBA{} // the overlay draws the text and caret
	ed.HintColor = hintColor
	ed.TextSize = th.TextSize
	ed.SelectionColor = selectionColor

	return layout.UniformInset(editorInset).Layout(gtx, func(gtx C) D {
		dims := ed.Layout(gtx)

		cl := clip.Rect(image.Rect(0, 0, dims.Size.X, dims.Size.Y)).Push(gtx.Ops)
		drawHighlightedText(gtx, th, es, results, dims)
		cl.Pop()

		return dims
	})
}

// drawHighlightedText paints each visible line over the transparent editor,
// marking the column of the line's error, if any.
func drawHighlightedText(gtx C, th *material.Theme, es *EditorState, results []lang.EvalResult, edDims D) {
	lineHeight, baseline := measureLineMetrics(gtx, th)
	if lineHeight <= 0 {
		return
	}
	ascent := lineHeight - baseline

	// CaretCoords is the caret's baseline in viewport coordinates; derive the
	// top of line 0 from it.
	caretLine, _ := es.Editor.CaretPos()
	caretPt := es.Editor.CaretCoords()
	baseY := caretPt.Y - float32(ascent) - float32(caretLine*lineHeight)

	for i, line := range es.Lines() {
		y := int(baseY + float32(i*lineHeight))
		if y+lineHeight < 0 || y > edDims.Size.Y {
			continue
		}
		errCol := -1
		if i < len(results) && results[i].IsErr {
			errCol = results[i].Col
		}
		x := 0
		for _, tok := range Tokenize(line, errCol) {
			lbl := material.Label(th, th.TextSize, tok.Text)
			lbl.Color = TokenColor(tok.Kind)
			lbl.Font = font.Font{Typeface: "Go Mono"}
			lbl.MaxLines = 1

			off := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
			tgtx := gtx
			tgtx.Constraints.Min = image.Point{}
			tgtx.Constraints.Max = image.Pt(edDims.Size.X-x, lineHeight)
			dims := lbl.Layout(tgtx)
			off.Pop()

			x += dims.Size.X
		}
	}

	if gtx.Focused(&es.Editor) {
		cx, cy := int(caretPt.X), int(caretPt.Y)
		paint.FillShape(gtx.Ops, editorFg,
			clip.Rect(image.Rect(cx, cy-ascent, cx+2, cy+baseline)).Op())
		gtx.Execute(op.InvalidateCmd{})
	}
}

// measureLineMetrics returns the height and baseline (distance from the
// bottom to the text baseline) of one line at the theme's text size.
func measureLineMetrics(gtx C, th *material.Theme) (height, baseline int) {
	macro := op.Record(gtx.Ops)
	lbl := material.Label(th, th.TextSize, "0")
	lbl.MaxLines = 1
	probeGtx := gtx
	probeGtx.Constraints.Min = image.Point{}
	dims := lbl.Layout(probeGtx)
	macro.Stop()
	return dims.Size.Y, dims.Baseline
}
