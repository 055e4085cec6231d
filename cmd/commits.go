package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/internal/output"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(commonFlags(),
		targetFlag(true),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format (text, json)",
			Value: "text",
		},
	)

	return &cli.Command{
		Name:    "commits",
		Aliases: []string{"c"},
		Usage:   "List the commits whose tree contains a file",
		Flags:   flags,
		Action:  commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	commits, err := ctx.FindCommits(c.Context)
	if err != nil {
		return err
	}

	format := output.FormatConsole
	if c.String("format") == "json" {
		format = output.FormatJSON
	}

	report := &output.CommitListReport{
		RepoPath: ctx.RepoPath,
		Target:   ctx.Target,
		Commits:  commits.Sorted(),
	}
	return output.WriteCommitList(report, output.OutputOptions{
		Format:     format,
		OutputPath: c.String("output"),
	})
}
