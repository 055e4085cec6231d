package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/config"
	"github.com/masmgr/gitdepgraph/internal/git"
	"github.com/masmgr/gitdepgraph/internal/objstore"
	"github.com/masmgr/gitdepgraph/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitdepgraph",
		Usage:   "Graph the commits whose tree contains a file",
		Version: "1.0.0",
		Commands: []*cli.Command{
			GraphCmd(),
			CommitsCmd(),
			CatObjectCmd(),
			WatchCmd(),
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		}, append(commonFlags(), graphFlags(false)...)...),
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Object source (loose, gogit)",
		},
		&cli.StringFlag{
			Name:  "match",
			Usage: "How the target is compared with tree entries (basename, path)",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "Maximum tree nesting searched before a snapshot is rejected",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of files shown in labels (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of files hidden from labels (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress warnings and the echo of written graphs",
		},
	}
}

// graphFlags are the flags of commands that render a graph.
func graphFlags(requireTarget bool) []cli.Flag {
	return []cli.Flag{
		targetFlag(requireTarget),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:    "graphviz-path",
			Aliases: []string{"g"},
			Usage:   "Path to the Graphviz executable; checked before the repository is read",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format (dot, json, console)",
			Value: "dot",
		},
		&cli.IntFlag{
			Name:  "max-label-files",
			Usage: "Files listed in each node label (default from config)",
		},
	}
}

func targetFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "target-file",
		Aliases:  []string{"f"},
		Usage:    "File to look for in each commit's tree",
		Required: required,
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("match") {
		cfg.Resolve.MatchMode = c.String("match")
	}
	if c.IsSet("max-depth") {
		cfg.Resolve.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("max-label-files") {
		cfg.Graph.MaxLabelFiles = c.Int("max-label-files")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// readOptions translates the configuration into reader options.
func readOptions(cfg *config.Config, repoPath string) (git.ReadOptions, error) {
	backend, err := git.ParseBackend(cfg.Backend)
	if err != nil {
		return git.ReadOptions{}, err
	}
	mode, err := objstore.ParseMatchMode(cfg.Resolve.MatchMode)
	if err != nil {
		return git.ReadOptions{}, err
	}
	return git.ReadOptions{
		RepoPath:  repoPath,
		Backend:   backend,
		MatchMode: mode,
		MaxDepth:  cfg.Resolve.MaxDepth,
		CacheSize: cfg.Resolve.CacheSize,
		Include:   cfg.Filters.Include,
		Exclude:   cfg.Filters.Exclude,
	}, nil
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) (output.OutputFormat, error) {
	switch s {
	case "gv", "graphviz":
		return output.FormatDOT, nil
	case "text", "table":
		return output.FormatConsole, nil
	default:
		return output.ParseFormat(s)
	}
}

// defaultAction runs the graph command when the root is invoked with --target-file,
// so "gitdepgraph -f X" works without naming a subcommand.
func defaultAction(c *cli.Context) error {
	if c.String("target-file") == "" {
		return cli.ShowAppHelp(c)
	}
	return graphAction(c)
}
