package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// config holds the settings that may come from either flags or a config file.
type config struct {
	Defs      []string      `yaml:"defs"`
	Trace     bool          `yaml:"trace"`
	StepLimit int           `yaml:"step_limit"`
	Timeout   time.Duration `yaml:"timeout"`
	History   string        `yaml:"history"`
}

const (
	flagDefs      = "defs"
	flagTrace     = "trace"
	flagStepLimit = "step-limit"
	flagTimeout   = "timeout"
	flagHistory   = "history"
)

func (cfg *config) bindFlags(fs *flag.FlagSet) {
	fs.Var((*stringList)(&cfg.Defs), flagDefs, "load operator definitions from a file; may be given more than once")
	fs.BoolVar(&cfg.Trace, flagTrace, false, "enable trace logging")
	fs.IntVar(&cfg.StepLimit, flagStepLimit, 0, "stop any reduction after this many steps; 0 means no limit")
	fs.DurationVar(&cfg.Timeout, flagTimeout, 0, "specify a time limit for each run")
	fs.StringVar(&cfg.History, flagHistory, "", "file to keep interactive line history in")
}

// loadConfig reads a YAML config file. An empty file is a zero config.
func loadConfig(path string) (cfg config, _ error) {
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	return decodeConfig(path, f)
}

func decodeConfig(name string, r io.Reader) (cfg config, _ error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %v: %w", name, err)
	}
	return cfg, nil
}

// merge takes any setting from file that was not explicitly set by a flag.
func (cfg *config) merge(file config, set map[string]bool) {
	if !set[flagDefs] {
		cfg.Defs = file.Defs
	}
	if !set[flagTrace] {
		cfg.Trace = file.Trace
	}
	if !set[flagStepLimit] {
		cfg.StepLimit = file.StepLimit
	}
	if !set[flagTimeout] {
		cfg.Timeout = file.Timeout
	}
	if !set[flagHistory] {
		cfg.History = file.History
	}
}

func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

type stringList []string

func (sl *stringList) String() string {
	if sl == nil {
		return ""
	}
	return strings.Join(*sl, ",")
}

func (sl *stringList) Set(s string) error {
	*sl = append(*sl, s)
	return nil
}
