package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/objstore"
	"github.com/masmgr/gitdepgraph/internal/objstore/objtest"
)

// fixtureRepo builds c1 -> c2 -> c3 where c1 and c3 contain docs/X and c2 does not.
func fixtureRepo(t *testing.T) (*objtest.Repo, [3]plumbing.Hash) {
	t.Helper()
	repo := objtest.New(t)
	x := repo.Blob("x\n")
	readme := repo.Blob("readme\n")

	withX := repo.Tree(objtest.File("README", readme), objtest.Dir("docs", repo.Tree(objtest.File("X", x))))
	withoutX := repo.Tree(objtest.File("README", readme))

	c1 := repo.Commit(withX, "add X")
	c2 := repo.Commit(withoutX, "drop X", c1)
	c3 := repo.Commit(withX, "restore X", c2)
	return repo, [3]plumbing.Hash{c1, c2, c3}
}

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	oldStdout := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	fn()

	w.Close()
	os.Stdout = oldStdout
	return <-done
}

func runApp(t *testing.T, args ...string) error {
	t.Helper()
	return App().Run(append([]string{"gitdepgraph"}, args...))
}

func TestGraph_WritesDOTFile(t *testing.T) {
	repo, commits := fixtureRepo(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	if err := runApp(t, "graph", "-r", repo.Root, "-f", "X", "-o", out, "-q"); err != nil {
		t.Fatalf("graph: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	dot := string(data)

	if !strings.HasPrefix(dot, "digraph G {\n    node [shape=box, fontsize=10];\n") {
		t.Fatalf("unexpected DOT header:\n%s", dot)
	}
	if !strings.Contains(dot, fmt.Sprintf(`"%s" [label="%s\nREADME\ndocs/X"];`, commits[0], commits[0])) {
		t.Errorf("c1 node missing:\n%s", dot)
	}
	if strings.Contains(dot, commits[1].String()) {
		t.Errorf("c2 does not contain X and must not appear:\n%s", dot)
	}
	// c3's parent c2 is not a node, so no edge is drawn.
	if strings.Contains(dot, "->") {
		t.Errorf("unexpected edge:\n%s", dot)
	}
}

func TestGraph_RootInvocationEchoesGraph(t *testing.T) {
	repo, _ := fixtureRepo(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runApp(t, "-r", repo.Root, "-f", "X", "-o", out)
	})
	if runErr != nil {
		t.Fatalf("root invocation: %v", runErr)
	}
	if !strings.Contains(stdout, out) || !strings.Contains(stdout, "digraph G {") {
		t.Fatalf("stdout = %q, expected confirmation and DOT echo", stdout)
	}
}

func TestGraph_NoCommitsExitsCleanly(t *testing.T) {
	repo, _ := fixtureRepo(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runApp(t, "graph", "-r", repo.Root, "-f", "missing.txt", "-o", out)
	})
	if runErr != nil {
		t.Fatalf("graph: %v", runErr)
	}
	if !strings.Contains(stdout, "No commits containing 'missing.txt' found.") {
		t.Fatalf("stdout = %q", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output file must not be created, stat err = %v", err)
	}
}

func TestGraph_RejectsBadGraphvizPath(t *testing.T) {
	repo, _ := fixtureRepo(t)
	err := runApp(t, "graph", "-r", repo.Root, "-f", "X", "-g", filepath.Join(t.TempDir(), "dot"))
	if err == nil {
		t.Fatal("expected error for missing graphviz executable, got nil")
	}
}

func TestGraph_RejectsNonRepository(t *testing.T) {
	err := runApp(t, "graph", "-r", t.TempDir(), "-f", "X", "-q")
	if !errors.Is(err, objstore.ErrNotRepository) {
		t.Fatalf("err = %v, expected ErrNotRepository", err)
	}
}

func TestCommits_ListsMatchingHashes(t *testing.T) {
	repo, commits := fixtureRepo(t)
	out := filepath.Join(t.TempDir(), "commits.txt")

	if err := runApp(t, "commits", "-r", repo.Root, "-f", "docs/X", "--match", "path", "-o", out); err != nil {
		t.Fatalf("commits: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	got := strings.Fields(string(data))
	if len(got) != 2 {
		t.Fatalf("commits = %v, expected 2 hashes", got)
	}
	for _, h := range got {
		if h != commits[0].String() && h != commits[2].String() {
			t.Errorf("unexpected commit %s", h)
		}
	}
}

func TestCatObject(t *testing.T) {
	repo, commits := fixtureRepo(t)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runApp(t, "cat-object", "-r", repo.Root, commits[1].String())
	})
	if runErr != nil {
		t.Fatalf("cat-object: %v", runErr)
	}
	if !strings.Contains(stdout, "parent "+commits[0].String()) {
		t.Fatalf("cat-object output = %q, expected parent line", stdout)
	}
}

func TestCatObject_PropagatesErrors(t *testing.T) {
	repo, _ := fixtureRepo(t)
	corrupt := plumbing.NewHash("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	repo.WriteRaw(corrupt, []byte("not zlib"))

	tests := []struct {
		name string
		hash string
		want error
	}{
		{name: "Corrupt", hash: corrupt.String(), want: objstore.ErrCorruptObject},
		{name: "Missing", hash: "0123456789012345678901234567890123456789", want: objstore.ErrObjectNotFound},
		{name: "InvalidHash", hash: "xyz", want: objstore.ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runApp(t, "cat-object", "-r", repo.Root, tt.hash)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, expected %v", err, tt.want)
			}
		})
	}
}
