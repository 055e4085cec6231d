package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/internal/objstore"
	"github.com/masmgr/gitdepgraph/internal/output"
)

// CatObjectCmd returns the cat-object command.
func CatObjectCmd() *cli.Command {
	return &cli.Command{
		Name:      "cat-object",
		Usage:     "Decode a single loose object",
		ArgsUsage: "<hash>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Print only the object kind and size",
			},
		},
		Action: catObjectAction,
	}
}

// catObjectAction reports decode failures as errors instead of skipping them.
func catObjectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one object hash, got %d arguments", c.NArg())
	}
	h, err := objstore.ParseHash(c.Args().First())
	if err != nil {
		return err
	}

	store, err := objstore.Open(c.String("repo"), objstore.Options{})
	if err != nil {
		return err
	}
	obj, err := store.Decode(h)
	if err != nil {
		return err
	}
	return output.WriteObject(os.Stdout, obj, c.Bool("type"))
}
