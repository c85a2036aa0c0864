package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("command", a.config.Command))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "files", len(a.config.Files))

	var err error
	switch a.config.Command {
	case CmdStats:
		err = a.stats(ctx)
	case CmdFmt:
		err = a.format(ctx)
	case CmdFind:
		err = a.find(ctx)
	case CmdApply:
		err = a.apply(ctx)
	case CmdMerge:
		err = a.merge(ctx)
	case CmdDump:
		err = a.dump(ctx)
	case CmdCheck:
		err = a.check(ctx)
	case CmdWatch:
		err = a.watch(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	logger.Debug("App.Run method finished.", "error", err)
	return err
}
