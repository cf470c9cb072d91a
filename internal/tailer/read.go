package tailer

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrFileTooLarge = errors.New("file exceeds maximum size")

// Reads every line of path. Lines keep their terminating newline, a trailing partial line counts.
func readLines(path string, maxBytes int64) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("failed to stat file: %w", err)
		return
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		err = fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, info.Size(), maxBytes)
		return
	}

	var reader io.Reader = file
	if maxBytes > 0 {
		// File may grow between stat and read
		reader = io.LimitReader(file, maxBytes)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		err = fmt.Errorf("failed to read file: %w", err)
		return
	}

	lines = splitLines(string(data))
	return
}

func splitLines(data string) (lines []string) {
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] != '\n' {
			continue
		}
		lines = append(lines, data[start:i+1])
		start = i + 1
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return
}
