package cmd

import (
	"github.com/urfave/cli/v2"
)

// GraphCmd returns the graph command.
func GraphCmd() *cli.Command {
	return &cli.Command{
		Name:    "graph",
		Aliases: []string{"g"},
		Usage:   "Render the ancestry of the commits that contain a file",
		Flags:   append(commonFlags(), graphFlags(true)...),
		Action:  graphAction,
	}
}

func graphAction(c *cli.Context) error {
	// Checked first so a bad path fails before any object is read.
	if err := verifyGraphvizPath(c.String("graphviz-path")); err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return renderGraph(c.Context, c, ctx)
}
