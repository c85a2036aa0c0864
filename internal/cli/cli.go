package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/vmfgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usage = `
vmftool - inspect, check and batch-edit Valve map files (.vmf, .vmf.gz, .vmf.zst).

Usage:
  vmftool [options] COMMAND [command options] FILE...

Commands:
  stats   FILE...                             Print entity, brush and connection counts.
  fmt     [-w] FILE...                        Print or rewrite files in canonical layout.
  find    [-class C] [-visgroup V] [-where EXPR] FILE...
                                              List matching entities.
  apply   -recipe R.hcl [-o OUT] FILE         Apply an HCL edit recipe.
  merge   -o OUT FILE FILE...                 Append later maps to the first.
  dump    [-path P] FILE                      Print a map, or one block, as YAML.
  check   [-workers N] FILE|DIR...            Report parse errors and broken entity I/O.
  watch   DIR...                              Check map files as they are saved.

Run 'vmftool COMMAND -h' for command options.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("vmftool", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{Command: flagSet.Arg(0)}
	cmdFlags := flag.NewFlagSet("vmftool "+cfg.Command, flag.ContinueOnError)
	cmdFlags.SetOutput(output)

	switch cfg.Command {
	case app.CmdFmt:
		cmdFlags.BoolVar(&cfg.Write, "w", false, "Write the result back to each source file instead of stdout.")
	case app.CmdFind:
		cmdFlags.StringVar(&cfg.Class, "class", "", "Only entities with this classname.")
		cmdFlags.StringVar(&cfg.VisGroup, "visgroup", "", "Only entities in this visgroup or its children.")
		cmdFlags.StringVar(&cfg.Where, "where", "", "HCL expression over the entity's key-values, e.g. 'has(\"parentname\")'.")
	case app.CmdApply:
		cmdFlags.StringVar(&cfg.Recipe, "recipe", "", "Path to the HCL recipe file.")
		cmdFlags.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	case app.CmdMerge:
		cmdFlags.StringVar(&cfg.Output, "o", "", "Output file.")
	case app.CmdDump:
		cmdFlags.StringVar(&cfg.Path, "path", "", "Block path such as 'world.solid[2]'.")
	case app.CmdCheck:
		cmdFlags.IntVar(&cfg.Workers, "workers", app.DefaultWorkers, "Number of files parsed concurrently.")
	case app.CmdStats, app.CmdWatch:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q (commands: %s)", cfg.Command, strings.Join(app.Commands, ", "))}
	}

	if err := cmdFlags.Parse(flagSet.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg.Files = cmdFlags.Args()
	slog.Debug("Arguments parsed successfully.", "command", cfg.Command, "files", len(cfg.Files))

	cfg.LogFormat = strings.ToLower(*logFormatFlag)
	cfg.LogLevel = strings.ToLower(*logLevelFlag)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
