package main

import (
	"bufio"
	"io"

	"bares/app/lang"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPostfixCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "postfix [flags] INPUT [OUTPUT]",
		Short: "Write the postfix form of each expression",
		Long: `Write the postfix (reverse Polish) form of each input line, with unary
minus shown as "~", or the error message for lines that do not parse.`,
		Args: ioArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, opts.resolve(args[0]))
			if err != nil {
				return err
			}
			defer closeIn()
			out, closeOut, err := openOutput(cmd, opts, args)
			if err != nil {
				return err
			}
			err = writePostfix(in, out, opts.reporter)
			if closeErr := closeOut(); err == nil {
				err = closeErr
			}
			return err
		},
	}
}

func writePostfix(r io.Reader, out io.Writer, reporter lang.Reporter) error {
	w := bufio.NewWriter(out)
	sc := newLineScanner(r)
	for sc.Scan() {
		line, err := postfixLine(trimLine(sc.Text()))
		if err != nil {
			line = reporter.Render(err)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "unable to write result")
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "unable to read input")
	}
	return w.Flush()
}

func postfixLine(line string) (string, error) {
	terms, err := lang.Tokenize(line)
	if err != nil {
		return "", err
	}
	postfix, err := lang.ToPostfix(terms)
	if err != nil {
		return "", err
	}
	return lang.FormatPostfix(postfix), nil
}
