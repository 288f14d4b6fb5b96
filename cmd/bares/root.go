package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"bares/app/lang"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	logLevels = []string{"debug", "info", "warn", "error", "fatal", "panic"}
	formats   = []string{"text", "json"}
	colors    = []string{"auto", "always", "never"}

	errNoInput = errors.New("no input file specified")
)

// options holds the merged flag and config file settings of one run.
type options struct {
	configPath string
	logLevel   string
	dataDir    string
	jobs       int
	format     string
	color      string
	messages   map[string]string

	reporter lang.Reporter
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "bares [flags] INPUT [OUTPUT]",
		Short: "Evaluate integer arithmetic expressions line by line",
		Long: `Evaluate one infix arithmetic expression per input line over signed
16-bit integers and write one result or error message per line.

INPUT may be "-" for standard input. OUTPUT defaults to standard output.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              ioArgs(1, 2),
		PersistentPreRunE: opts.preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts, args)
		},
	}
	rootFlags(opts, rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newPostfixCommand(opts),
		newWatchCommand(opts),
	)
	return rootCmd
}

func rootFlags(opts *options, flags *pflag.FlagSet) {
	flags.StringVar(&opts.configPath, "config", defaultConfigFile, "Path to the TOML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", fmt.Sprintf("Log messages above specified level (%s)", strings.Join(logLevels, ", ")))
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory that relative INPUT and OUTPUT paths are resolved against")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "Number of lines evaluated in parallel")
	flags.StringVar(&opts.format, "format", "text", fmt.Sprintf("Output format (%s)", strings.Join(formats, ", ")))
	flags.StringVar(&opts.color, "color", "auto", fmt.Sprintf("Color error lines in text output (%s)", strings.Join(colors, ", ")))
}

// ioArgs validates the positional INPUT [OUTPUT] arguments.
func ioArgs(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs {
			return errNoInput
		}
		if len(args) > maxArgs {
			return errors.Errorf("%q accepts at most %d arguments, received %d", cmd.CommandPath(), maxArgs, len(args))
		}
		return nil
	}
}

func (opts *options) preRunE(cmd *cobra.Command, _ []string) error {
	explicit := cmd.Flag("config").Changed
	cfg, err := loadConfig(opts.configPath, explicit)
	if err != nil {
		return err
	}
	cfg.apply(opts, cmd.Flags())

	// report every invalid setting at once
	var merr *multierror.Error
	if err := setupLogging(opts.logLevel); err != nil {
		merr = multierror.Append(merr, err)
	}
	if !contains(formats, opts.format) {
		merr = multierror.Append(merr, errors.Errorf("output format %q is not supported, choose from: %s", opts.format, strings.Join(formats, ", ")))
	}
	if !contains(colors, opts.color) {
		merr = multierror.Append(merr, errors.Errorf("color mode %q is not supported, choose from: %s", opts.color, strings.Join(colors, ", ")))
	}
	if opts.jobs < 1 {
		merr = multierror.Append(merr, errors.Errorf("jobs must be at least 1, got %d", opts.jobs))
	}
	if opts.reporter, err = lang.NewReporter(opts.messages); err != nil {
		merr = multierror.Append(merr, errors.Wrap(err, "invalid messages table"))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}
	logrus.Debugf("config %s: data-dir=%q jobs=%d format=%s color=%s", opts.configPath, opts.dataDir, opts.jobs, opts.format, opts.color)
	return nil
}

func setupLogging(logLevel string) error {
	if !contains(logLevels, logLevel) {
		return errors.Errorf("log level %q is not supported, choose from: %s", logLevel, strings.Join(logLevels, ", "))
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// resolve joins a relative path onto the data directory.
func (opts *options) resolve(path string) string {
	if path == "-" || opts.dataDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(opts.dataDir, path)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
