package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Entry
	}{
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
		{
			name:    "text lines",
			content: "Hello\nGood morning\n",
			want: []Entry{
				{Line: 1, Text: "Hello"},
				{Line: 2, Text: "Good morning"},
			},
		},
		{
			name:    "presets",
			content: "apple => Apfel\n  cat=>Katze  \n",
			want: []Entry{
				{Line: 1, Text: "apple", Translation: "Apfel"},
				{Line: 2, Text: "cat", Translation: "Katze"},
			},
		},
		{
			name:    "blank lines are kept",
			content: "one\n\n  \t\nthree",
			want: []Entry{
				{Line: 1, Text: "one"},
				{Line: 2},
				{Line: 3},
				{Line: 4, Text: "three"},
			},
		},
		{
			name:    "incomplete preset is plain text",
			content: "a =>\n=> b\n",
			want: []Entry{
				{Line: 1, Text: "a =>"},
				{Line: 2, Text: "=> b"},
			},
		},
		{
			name:    "windows line endings",
			content: "你好\r\nfoo => bar\r\n",
			want: []Entry{
				{Line: 1, Text: "你好"},
				{Line: 2, Text: "foo", Translation: "bar"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadEntries(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("ReadEntries() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadEntries() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEntryPredicates(t *testing.T) {
	if !(Entry{}).Blank() {
		t.Error("empty entry should be blank")
	}
	if (Entry{Text: "x"}).Preset() {
		t.Error("entry without translation is not a preset")
	}
	if !(Entry{Text: "x", Translation: "y"}).Preset() {
		t.Error("entry with translation is a preset")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("Hello\nworld => Welt\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got) != 2 || got[1].Translation != "Welt" {
		t.Errorf("ReadFile() = %+v", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
