// Package watch reports changes to the object database and refs of a repository.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Options configures Run.
type Options struct {
	Debounce time.Duration
	OnError  func(error)
}

// Run watches gitDir, its objects/ and refs/ trees until ctx is done.
// Bursts of events are collapsed into one onChange call carrying the last path seen.
// onChange runs on the watch goroutine, so calls never overlap.
func Run(ctx context.Context, gitDir string, opts Options, onChange func(path string)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(gitDir); err != nil {
		return err
	}
	for _, sub := range []string{"objects", "refs"} {
		if err := addTree(watcher, filepath.Join(gitDir, sub)); err != nil {
			return err
		}
	}

	var debounceTimer *time.Timer
	fired := make(chan string, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
				// New fan-out or ref namespace directory.
				if err := addTree(watcher, event.Name); err != nil && opts.OnError != nil {
					opts.OnError(err)
				}
			}
			if shouldIgnoreEvent(event) {
				continue
			}

			name := event.Name
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.Debounce, func() {
				select {
				case fired <- name:
				default:
				}
			})

		case name := <-fired:
			onChange(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	if !isDir(root) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	path := filepath.ToSlash(event.Name)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return true
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.HasPrefix(base, "tmp_obj_") || strings.HasPrefix(base, "tmp_pack_") {
		return true
	}
	if strings.Contains(path, "/logs/") {
		return true
	}
	switch base {
	case "config", "index", "FETCH_HEAD", "ORIG_HEAD", "COMMIT_EDITMSG":
		return true
	}
	return false
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
