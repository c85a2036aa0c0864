package app

import (
	"errors"
	"fmt"
	"slices"
)

// Command names.
const (
	CmdStats = "stats"
	CmdFmt   = "fmt"
	CmdFind  = "find"
	CmdApply = "apply"
	CmdMerge = "merge"
	CmdDump  = "dump"
	CmdCheck = "check"
	CmdWatch = "watch"
)

// Commands lists every command in help order.
var Commands = []string{CmdStats, CmdFmt, CmdFind, CmdApply, CmdMerge, CmdDump, CmdCheck, CmdWatch}

// DefaultWorkers is the check concurrency when none is configured.
const DefaultWorkers = 4

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	Files   []string // maps, or directories for check and watch

	Write    bool   // fmt: rewrite files in place
	Class    string // find: classname filter
	Where    string // find: predicate expression
	VisGroup string // find: visgroup name filter
	Recipe   string // apply: recipe file
	Output   string // apply, merge: destination file
	Path     string // dump: block path
	Workers  int    // check: files parsed concurrently

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains(Commands, cfg.Command) {
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("%s: at least one file is required", cfg.Command)
	}

	switch cfg.Command {
	case CmdApply:
		if cfg.Recipe == "" {
			return nil, errors.New("apply: -recipe is required")
		}
		if len(cfg.Files) != 1 {
			return nil, errors.New("apply: exactly one map file is required")
		}
	case CmdMerge:
		if cfg.Output == "" {
			return nil, errors.New("merge: -o is required")
		}
		if len(cfg.Files) < 2 {
			return nil, errors.New("merge: at least two map files are required")
		}
	case CmdDump:
		if len(cfg.Files) != 1 {
			return nil, errors.New("dump: exactly one map file is required")
		}
	case CmdCheck:
		if cfg.Workers < 0 {
			return nil, errors.New("check: -workers must not be negative")
		}
	}

	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	return &cfg, nil
}
