package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "bares.toml"

// Config mirrors the configuration file, TOML by default or YAML for a
// .yaml or .yml path. Command-line flags take precedence over every field.
type Config struct {
	LogLevel string            `toml:"log_level" yaml:"log_level"`
	DataDir  string            `toml:"data_dir" yaml:"data_dir"`
	Jobs     int               `toml:"jobs" yaml:"jobs"`
	Format   string            `toml:"format" yaml:"format"`
	Color    string            `toml:"color" yaml:"color"`
	Messages map[string]string `toml:"messages" yaml:"messages"`
}

// loadConfig decodes path. A missing file is only an error when the path
// was given explicitly. Unknown keys are rejected in both formats.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := decodeYAML(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, errors.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func decodeYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to read config file %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document leaves every setting at its default
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrapf(err, "unable to parse config file %s", path)
	}
	return nil
}

// apply copies config values into opts for every flag the user did not set.
func (cfg *Config) apply(opts *options, flags *pflag.FlagSet) {
	set := func(name string, fn func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			return
		}
		fn()
	}
	if cfg.LogLevel != "" {
		set("log-level", func() { opts.logLevel = cfg.LogLevel })
	}
	if cfg.DataDir != "" {
		set("data-dir", func() { opts.dataDir = cfg.DataDir })
	}
	if cfg.Jobs != 0 {
		set("jobs", func() { opts.jobs = cfg.Jobs })
	}
	if cfg.Format != "" {
		set("format", func() { opts.format = cfg.Format })
	}
	if cfg.Color != "" {
		set("color", func() { opts.color = cfg.Color })
	}
	opts.messages = cfg.Messages
}
