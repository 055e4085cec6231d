package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/git"
)

// diagnostics prints warnings for objects a scan stepped over.
type diagnostics struct {
	out     io.Writer
	quiet   bool
	skipped int
}

func (d *diagnostics) onSkip(h plumbing.Hash, err error) {
	d.skipped++
	if d.quiet {
		return
	}
	prefix := color.YellowString("warning:")
	if !git.IsSkippable(err) {
		prefix = color.RedString("error:")
	}
	fmt.Fprintf(d.out, "%s skipping %s: %v\n", prefix, h, err)
}

func (d *diagnostics) onUnreadable(path string, err error) {
	d.skipped++
	d.warnf("skipping directory %s: %v", path, err)
}

func (d *diagnostics) warnf(format string, args ...interface{}) {
	if d.quiet {
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", color.YellowString("warning:"), fmt.Sprintf(format, args...))
}

func (d *diagnostics) summary() {
	if d.quiet || d.skipped == 0 {
		return
	}
	fmt.Fprintf(d.out, "%s %d object(s) could not be read and were left out\n", color.YellowString("warning:"), d.skipped)
}
