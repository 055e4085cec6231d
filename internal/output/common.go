package output

import (
	"io"
	"os"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// labelFiles returns the files shown in a node label and whether the list was cut.
func labelFiles(files []string, maxFiles int) ([]string, bool) {
	if maxFiles == 0 {
		maxFiles = DefaultMaxLabelFiles
	}
	if maxFiles < 0 {
		return nil, false
	}
	shown := limitTop(files, maxFiles)
	return shown, len(shown) < len(files)
}

func stdout(options OutputOptions) io.Writer {
	if options.Stdout != nil {
		return options.Stdout
	}
	return os.Stdout
}

func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		return stdout(options), nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func shortHash(h string) string {
	if len(h) <= 8 {
		return h
	}
	return h[:8]
}
