package lang

import (
	"strconv"

	"github.com/pkg/errors"
)

// EvalResult is the rendered outcome of evaluating a single line.
type EvalResult struct {
	Text  string // decimal result or error message
	IsErr bool
	Col   int // 0-based error column, -1 when there is none
}

// CachedLine holds the cached state for a single line.
type CachedLine struct {
	Text   string
	Result EvalResult
	valid  bool
}

// EvalState memoizes line results across repeated evaluations of a
// changing buffer. A line's result depends only on its text, so a line is
// recomputed only when its text changes. The zero value renders errors with
// DefaultReporter.
type EvalState struct {
	Reporter *Reporter
	Lines    []CachedLine
}

// EvalAll evaluates every line, reusing the cached result for a line whose
// text at the same index has not changed.
func (es *EvalState) EvalAll(lines []string) []EvalResult {
	r := defaultReporter
	if es.Reporter != nil {
		r = *es.Reporter
	}

	// Full reset when line count changes
	if len(lines) != len(es.Lines) {
		es.Lines = make([]CachedLine, len(lines))
	}

	results := make([]EvalResult, len(lines))
	for i, line := range lines {
		cached := &es.Lines[i]
		if !cached.valid || cached.Text != line {
			cached.Text = line
			cached.Result = EvalOne(r, line)
			cached.valid = true
		}
		results[i] = cached.Result
	}
	return results
}

// EvalOne evaluates line and renders the outcome with r.
func EvalOne(r Reporter, line string) EvalResult {
	v, err := EvalLine(line)
	if err != nil {
		res := EvalResult{Text: r.Render(err), IsErr: true, Col: -1}
		var e *Error
		if errors.As(err, &e) && e.Code.HasColumn() {
			res.Col = e.Col
		}
		return res
	}
	return EvalResult{Text: strconv.Itoa(v), Col: -1}
}
