package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"bares/app/lang"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	chunkSize     = 1024
	maxLineLength = 1 << 20
)

// lineResult is the outcome of one input line.
type lineResult struct {
	n     int // 1-based line number
	input string
	value int
	err   error
}

// stats summarizes a completed batch.
type stats struct {
	lines  int
	errors int
	faults int
}

func runEval(cmd *cobra.Command, opts *options, args []string) error {
	in, closeIn, err := openInput(cmd, opts.resolve(args[0]))
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cmd, opts, args)
	if err != nil {
		return err
	}

	w := newResultWriter(out, opts)
	st, err := evalStream(cmd.Context(), in, w, opts.jobs)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if closeErr := closeOut(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	logrus.Infof("evaluated %d lines, %d with errors", st.lines, st.errors)
	return nil
}

// evalStream evaluates every line of r in input order. With jobs > 1 lines
// are read in chunks and each chunk is evaluated in parallel.
func evalStream(ctx context.Context, r io.Reader, w resultWriter, jobs int) (stats, error) {
	var st stats
	sc := newLineScanner(r)

	chunk := make([]lineResult, 0, chunkSize)
	n := 0
	flush := func() error {
		if err := evalChunk(ctx, chunk, jobs); err != nil {
			return err
		}
		for i := range chunk {
			res := &chunk[i]
			st.lines++
			if res.err != nil {
				st.errors++
				if errors.Is(res.err, lang.ErrInternal) {
					st.faults++
					logrus.WithField("line", res.n).Errorf("evaluating %q: %v", res.input, res.err)
				}
			}
			if err := w.Write(res); err != nil {
				return errors.Wrap(err, "unable to write result")
			}
		}
		chunk = chunk[:0]
		return nil
	}

	for sc.Scan() {
		n++
		chunk = append(chunk, lineResult{n: n, input: trimLine(sc.Text())})
		if len(chunk) == cap(chunk) || jobs == 1 {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return st, errors.Wrap(err, "unable to read input")
	}
	if err := flush(); err != nil {
		return st, err
	}
	return st, nil
}

// evalChunk fills in the result of every line in chunk.
func evalChunk(ctx context.Context, chunk []lineResult, jobs int) error {
	if jobs <= 1 || len(chunk) <= 1 {
		for i := range chunk {
			evalLine(&chunk[i])
		}
		return ctx.Err()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range chunk {
		res := &chunk[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evalLine(res)
			return nil
		})
	}
	return g.Wait()
}

func evalLine(res *lineResult) {
	res.value, res.err = lang.EvalLine(res.input)
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithField("line", res.n).Debugf("%q => %d, %v", res.input, res.value, res.err)
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return sc
}

// trimLine drops the carriage return of CRLF input.
func trimLine(s string) string {
	return strings.TrimSuffix(s, "\r")
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "the file specified cannot be opened")
	}
	logrus.Debugf("reading %s", path)
	return f, func() { f.Close() }, nil
}

func openOutput(cmd *cobra.Command, opts *options, args []string) (io.Writer, func() error, error) {
	if len(args) < 2 || args[1] == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	path := opts.resolve(args[1])
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "the file specified cannot be opened")
	}
	logrus.Debugf("writing %s", path)
	return f, f.Close, nil
}
