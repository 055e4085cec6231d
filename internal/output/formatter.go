package output

import (
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ GraphReportWriter = (*DOTGraphWriter)(nil)
	_ GraphReportWriter = (*JSONGraphWriter)(nil)
	_ GraphReportWriter = (*ConsoleGraphWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatDOT     OutputFormat = "dot"
	FormatJSON    OutputFormat = "json"
	FormatConsole OutputFormat = "console"
)

const (
	DefaultMaxLabelFiles = 10
	DefaultNodeShape     = "box"
	DefaultFontSize      = 10
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format        OutputFormat
	OutputPath    string
	MaxLabelFiles int // Files shown per node label; 0 uses the default, negative hides files
	NodeShape     string
	FontSize      int
	// Echo also prints the rendered graph to Stdout when OutputPath is a file.
	Echo bool
	// Stdout receives output when OutputPath is empty. Nil means os.Stdout.
	Stdout io.Writer
}

// GraphReport holds the located commits, their ancestry and per-commit file lists.
type GraphReport struct {
	RepoPath    string
	Target      string
	GeneratedAt time.Time
	Graph       *git.CommitGraph
	Files       map[plumbing.Hash][]string
}

// GraphReportWriter writes commit graph reports.
type GraphReportWriter interface {
	Write(report *GraphReport, options OutputOptions) error
}

// NewGraphReportWriter creates a graph report writer for the specified format.
func NewGraphReportWriter(format OutputFormat) GraphReportWriter {
	switch format {
	case FormatJSON:
		return &JSONGraphWriter{}
	case FormatConsole:
		return &ConsoleGraphWriter{}
	default:
		return &DOTGraphWriter{}
	}
}

// ParseFormat validates a format name. The empty string selects DOT.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", FormatDOT:
		return FormatDOT, nil
	case FormatJSON, FormatConsole:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected dot, json or console)", s)
	}
}
