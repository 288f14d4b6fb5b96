package main

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"bares/app/lang"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// resultWriter renders line results to the output in input order.
type resultWriter interface {
	Write(res *lineResult) error
	Flush() error
}

func newResultWriter(out io.Writer, opts *options) resultWriter {
	bw := bufio.NewWriter(out)
	if opts.format == "json" {
		return &jsonWriter{w: bw, enc: json.NewEncoder(bw), reporter: opts.reporter}
	}
	return &textWriter{w: bw, reporter: opts.reporter, color: useColor(opts.color, out)}
}

// useColor resolves the --color mode against the output stream.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type textWriter struct {
	w        *bufio.Writer
	reporter lang.Reporter
	color    bool
}

func (tw *textWriter) Write(res *lineResult) error {
	var line string
	if res.err != nil {
		line = tw.reporter.Render(res.err)
		if tw.color {
			line = ansiRed + line + ansiReset
		}
	} else {
		line = strconv.Itoa(res.value)
	}
	if _, err := tw.w.WriteString(line); err != nil {
		return err
	}
	return tw.w.WriteByte('\n')
}

func (tw *textWriter) Flush() error { return tw.w.Flush() }

type jsonLine struct {
	Line   int        `json:"line"`
	Input  string     `json:"input"`
	Result *string    `json:"result,omitempty"`
	Error  *jsonError `json:"error,omitempty"`
}

type jsonError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Column  int    `json:"column,omitempty"` // 1-based
	Message string `json:"message"`
}

type jsonWriter struct {
	w        *bufio.Writer
	enc      *jsoniter.Encoder
	reporter lang.Reporter
}

func (jw *jsonWriter) Write(res *lineResult) error {
	rec := jsonLine{Line: res.n, Input: res.input}
	if res.err == nil {
		s := strconv.Itoa(res.value)
		rec.Result = &s
		return jw.enc.Encode(rec)
	}

	rec.Error = &jsonError{Code: -1, Name: "InternalError", Message: jw.reporter.Render(res.err)}
	var e *lang.Error
	if errors.As(res.err, &e) {
		rec.Error.Code = int(e.Code)
		rec.Error.Name = e.Code.String()
		if e.Code.HasColumn() {
			rec.Error.Column = e.Col + 1
		}
	}
	return jw.enc.Encode(rec)
}

func (jw *jsonWriter) Flush() error { return jw.w.Flush() }
