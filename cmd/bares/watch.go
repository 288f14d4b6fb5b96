package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] INPUT OUTPUT",
		Short: "Re-evaluate INPUT into OUTPUT whenever INPUT changes",
		Args:  ioArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(cmd.Context(), opts, opts.resolve(args[0]), opts.resolve(args[1]), nil)
		},
	}
}

// evalFile evaluates input into a freshly truncated output file.
func evalFile(ctx context.Context, opts *options, input, output string) (stats, error) {
	in, err := os.Open(input)
	if err != nil {
		return stats{}, errors.Wrapf(err, "the file specified cannot be opened")
	}
	defer in.Close()
	out, err := os.Create(output)
	if err != nil {
		return stats{}, errors.Wrapf(err, "the file specified cannot be opened")
	}
	// never color a file
	w := newResultWriter(out, &options{format: opts.format, color: "never", reporter: opts.reporter})
	st, err := evalStream(ctx, in, w, opts.jobs)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return st, err
}

// watchFile evaluates once, then again after every write to input, until
// ctx is done. The parent directory is watched so editors that replace the
// file are followed. done, if not nil, receives after every evaluation
// that it has room for.
func watchFile(ctx context.Context, opts *options, input, output string, done chan<- stats) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "unable to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return errors.Wrapf(err, "unable to watch %s", input)
	}

	run := func() error {
		st, err := evalFile(ctx, opts, input, output)
		if err != nil {
			return err
		}
		logrus.Infof("evaluated %d lines of %s, %d with errors", st.lines, input, st.errors)
		if done != nil {
			// never block the watcher on a slow receiver
			select {
			case done <- st:
			default:
			}
		}
		return nil
	}
	if err := run(); err != nil {
		return err
	}

	target := filepath.Clean(input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logrus.Debugf("%s: %s", event.Op, event.Name)
			if err := run(); err != nil {
				// the file may be mid-replacement; wait for the next event
				logrus.WithError(err).Warn("re-evaluation failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Error("file watcher error")
		}
	}
}
