package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/git"
)

func TestRenderDOT(t *testing.T) {
	report, a, b, _ := sampleReport()

	got := RenderDOT(report, OutputOptions{})
	want := strings.Join([]string{
		"digraph G {",
		"    node [shape=box, fontsize=10];",
		fmt.Sprintf(`    "%s" [label="%s\nREADME\nsrc/X"];`, a, a),
		fmt.Sprintf(`    "%s" [label="%s\nsrc/X"];`, b, b),
		fmt.Sprintf(`    "%s" -> "%s";`, b, a),
		"}",
		"",
	}, "\n")

	if got != want {
		t.Fatalf("RenderDOT mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderDOT_DropsEdgesToNonNodes(t *testing.T) {
	report, _, _, outside := sampleReport()
	got := RenderDOT(report, OutputOptions{})
	if strings.Contains(got, outside.String()) {
		t.Fatalf("DOT output references a commit outside the graph:\n%s", got)
	}
	if n := countLines(got, "->"); n != 1 {
		t.Fatalf("edge count = %d, expected 1", n)
	}
}

func TestRenderDOT_TruncatesLabels(t *testing.T) {
	h := hashOf(0x42)
	files := make([]string, 12)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d", i)
	}
	g := git.NewCommitGraph()
	g.Add(h, nil)
	report := &GraphReport{Graph: g, Files: map[plumbing.Hash][]string{h: files}}

	got := RenderDOT(report, OutputOptions{})
	if !strings.Contains(got, `\nf09\n..."`) {
		t.Fatalf("label not truncated after 10 files:\n%s", got)
	}
	if strings.Contains(got, "f10") {
		t.Fatalf("label shows more than 10 files:\n%s", got)
	}

	got = RenderDOT(report, OutputOptions{MaxLabelFiles: 12})
	if strings.Contains(got, "...") {
		t.Fatalf("label truncated although all files fit:\n%s", got)
	}
}

func TestRenderDOT_EscapesLabels(t *testing.T) {
	h := hashOf(0x01)
	g := git.NewCommitGraph()
	g.Add(h, nil)
	report := &GraphReport{Graph: g, Files: map[plumbing.Hash][]string{h: {`say "hi".txt`, `back\slash`}}}

	got := RenderDOT(report, OutputOptions{NodeShape: "ellipse", FontSize: 12})
	if !strings.Contains(got, `say \"hi\".txt`) {
		t.Errorf("quotes not escaped:\n%s", got)
	}
	if !strings.Contains(got, `back\\slash`) {
		t.Errorf("backslash not escaped:\n%s", got)
	}
	if !strings.Contains(got, "node [shape=ellipse, fontsize=12];") {
		t.Errorf("node attributes not applied:\n%s", got)
	}
}

func TestEscapeDOT(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "src/main.go", expected: "src/main.go"},
		{name: "Quote", input: `a"b`, expected: `a\"b`},
		{name: "Backslash", input: `a\b`, expected: `a\\b`},
		{name: "Newline", input: "a\nb", expected: `a\nb`},
		{name: "CarriageReturn", input: "a\r", expected: "a"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeDOT(tt.input); got != tt.expected {
				t.Errorf("escapeDOT(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDotID(t *testing.T) {
	if got := dotID("box"); got != "box" {
		t.Errorf("dotID(box) = %q", got)
	}
	if got := dotID("my shape"); got != `"my shape"` {
		t.Errorf("dotID(my shape) = %q", got)
	}
}

func TestDOTGraphWriter_FileAndEcho(t *testing.T) {
	report, _, _, _ := sampleReport()
	path := filepath.Join(t.TempDir(), "graph.dot")

	var echo bytes.Buffer
	w := &DOTGraphWriter{}
	if err := w.Write(report, OutputOptions{OutputPath: path, Echo: true, Stdout: &echo}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != RenderDOT(report, OutputOptions{}) {
		t.Fatalf("file content differs from RenderDOT output")
	}
	if !strings.Contains(echo.String(), path) || !strings.Contains(echo.String(), "digraph G {") {
		t.Fatalf("echo output = %q, expected path and graph", echo.String())
	}
}

func TestDOTGraphWriter_QuietFile(t *testing.T) {
	report, _, _, _ := sampleReport()
	path := filepath.Join(t.TempDir(), "graph.dot")

	var echo bytes.Buffer
	if err := (&DOTGraphWriter{}).Write(report, OutputOptions{OutputPath: path, Stdout: &echo}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if echo.Len() != 0 {
		t.Fatalf("quiet write printed %q", echo.String())
	}
}
