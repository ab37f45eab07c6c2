// Package batch parses line-oriented input for the translate command.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PresetSeparator splits a line into source text and a given translation
const PresetSeparator = "=>"

// Entry is one input line
type Entry struct {
	Line int
	Text string
	// Translation is set when the line carries its own translation
	Translation string
}

// Blank reports whether the line has no text
func (e Entry) Blank() bool {
	return e.Text == ""
}

// Preset reports whether no request is needed for the line
func (e Entry) Preset() bool {
	return e.Translation != ""
}

// ReadEntries reads every line of r, blank ones included so output can
// stay aligned with input. Supported formats:
// - Text only: "Hello world" (will be translated)
// - With translation: "Hello => Hallo" (kept as given)
// A line whose part after the separator is blank is translated as a whole.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		entries = append(entries, parseLine(n, scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read input: %w", err)
	}
	return entries, nil
}

// ReadFile reads entries from a file
func ReadFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	return ReadEntries(f)
}

func parseLine(n int, line string) Entry {
	line = strings.TrimSpace(line)
	if text, translation, ok := strings.Cut(line, PresetSeparator); ok {
		text = strings.TrimSpace(text)
		translation = strings.TrimSpace(translation)
		if text != "" && translation != "" {
			return Entry{Line: n, Text: text, Translation: translation}
		}
	}
	return Entry{Line: n, Text: line}
}
