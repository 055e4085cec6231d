package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/internal/watch"
)

// WatchCmd returns the watch command.
func WatchCmd() *cli.Command {
	flags := append(commonFlags(), graphFlags(true)...)
	flags = append(flags, &cli.DurationFlag{
		Name:  "debounce",
		Usage: "Quiet period after a change before the graph is rebuilt",
		Value: watch.DefaultDebounce,
	})

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Re-render the graph whenever objects or refs change",
		Flags:   flags,
		Action:  watchAction,
	}
}

func watchAction(c *cli.Context) error {
	if err := verifyGraphvizPath(c.String("graphviz-path")); err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := renderGraph(runCtx, c, ctx); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, color.GreenString("Watching %s for changes", ctx.GitDir))

	return watch.Run(runCtx, ctx.GitDir, watch.Options{
		Debounce: c.Duration("debounce"),
		OnError: func(err error) {
			ctx.diag.warnf("watcher: %v", err)
		},
	}, func(path string) {
		rerender(runCtx, c, ctx, path)
	})
}

func rerender(runCtx context.Context, c *cli.Context, ctx *CommandContext, path string) {
	fmt.Fprintf(os.Stderr, "Change detected: %s\n", filepath.Base(path))
	if err := ctx.Reopen(); err != nil {
		ctx.diag.warnf("%v", err)
		return
	}
	if err := renderGraph(runCtx, c, ctx); err != nil && runCtx.Err() == nil {
		ctx.diag.warnf("%v", err)
	}
}
