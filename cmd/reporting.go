package cmd

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/internal/output"
)

func writeGraphReport(c *cli.Context, ctx *CommandContext, report *output.GraphReport) error {
	opts, err := ctx.OutputOptions(c)
	if err != nil {
		return err
	}
	writer := output.NewGraphReportWriter(opts.Format)
	return writer.Write(report, opts)
}

// renderGraph runs one full pass: scan, graph, labels and output.
func renderGraph(runCtx context.Context, c *cli.Context, ctx *CommandContext) error {
	commits, err := ctx.FindCommits(runCtx)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		ctx.PrintNoCommitsMessage()
		return nil
	}

	report, err := ctx.BuildReport(runCtx, commits)
	if err != nil {
		return err
	}
	return writeGraphReport(c, ctx, report)
}
