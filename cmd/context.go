package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitdepgraph/config"
	"github.com/masmgr/gitdepgraph/internal/git"
	"github.com/masmgr/gitdepgraph/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands that read history.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	GitDir   string
	Target   string
	Options  git.ReadOptions
	Reader   git.RepositoryReader
	diag     *diagnostics
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, repository verification and reader setup.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	gitDir, err := verifyRepoPath(repoPath)
	if err != nil {
		return nil, err
	}

	opts, err := readOptions(cfg, repoPath)
	if err != nil {
		return nil, err
	}
	diag := &diagnostics{out: os.Stderr, quiet: c.Bool("quiet")}
	opts.OnSkip = diag.onSkip
	opts.OnUnreadable = diag.onUnreadable

	ctx := &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		GitDir:   gitDir,
		Target:   c.String("target-file"),
		Options:  opts,
		diag:     diag,
	}
	if err := ctx.Reopen(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Reopen replaces the reader so that objects written since the last scan are seen.
func (ctx *CommandContext) Reopen() error {
	reader, err := git.NewReader(ctx.Options)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	ctx.Reader = reader
	ctx.diag.skipped = 0
	return nil
}

// FindCommits locates the commits containing the target file.
func (ctx *CommandContext) FindCommits(runCtx context.Context) (git.CommitSet, error) {
	commits, err := ctx.Reader.FindCommits(runCtx, ctx.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to scan objects: %w", err)
	}
	ctx.diag.summary()
	return commits, nil
}

// BuildReport builds the graph of commits and lists the files shown in each label.
// A commit whose file list cannot be read keeps an empty label.
func (ctx *CommandContext) BuildReport(runCtx context.Context, commits git.CommitSet) (*output.GraphReport, error) {
	graph, err := ctx.Reader.BuildGraph(runCtx, commits)
	if err != nil {
		return nil, fmt.Errorf("failed to build commit graph: %w", err)
	}

	report := &output.GraphReport{
		RepoPath:    ctx.RepoPath,
		Target:      ctx.Target,
		GeneratedAt: time.Now(),
		Graph:       graph,
		Files:       make(map[plumbing.Hash][]string, graph.Len()),
	}
	for _, h := range graph.Sorted() {
		files, err := ctx.Reader.ListFiles(runCtx, h)
		if err != nil {
			if runCtx.Err() != nil {
				return nil, runCtx.Err()
			}
			ctx.diag.warnf("cannot list files of %s: %v", h, err)
			continue
		}
		report.Files[h] = files
	}
	return report, nil
}

// PrintNoCommitsMessage prints a message when no commits are found.
func (ctx *CommandContext) PrintNoCommitsMessage() {
	fmt.Printf("No commits containing '%s' found.\n", ctx.Target)
}

// OutputOptions creates OutputOptions from CLI flags and configuration.
func (ctx *CommandContext) OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	format, err := getOutputFormat(c.String("format"))
	if err != nil {
		return output.OutputOptions{}, err
	}
	outputPath := c.String("output")
	return output.OutputOptions{
		Format:        format,
		OutputPath:    outputPath,
		MaxLabelFiles: ctx.Config.Graph.MaxLabelFiles,
		NodeShape:     ctx.Config.Graph.NodeShape,
		FontSize:      ctx.Config.Graph.FontSize,
		Echo:          outputPath != "" && !c.Bool("quiet"),
	}, nil
}
