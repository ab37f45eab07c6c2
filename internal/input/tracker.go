// Package input tracks the editable source text and decides which edits are
// committed. Edits made during an IME composition update the text but are
// held back until the composition ends.
package input

import (
	"sync"

	"codeberg.org/snonux/libretranslator/internal"
)

// EditableText is the current source text and its character count
type EditableText struct {
	Content string
	Length  int
}

func newEditableText(s string) EditableText {
	return EditableText{Content: s, Length: internal.CharCount(s)}
}

// EventKind classifies a raw edit
type EventKind int

const (
	Edit EventKind = iota
	Paste
	CompositionStart
	CompositionUpdate
	CompositionEnd
)

func (k EventKind) String() string {
	switch k {
	case Edit:
		return "edit"
	case Paste:
		return "paste"
	case CompositionStart:
		return "composition-start"
	case CompositionUpdate:
		return "composition-update"
	case CompositionEnd:
		return "composition-end"
	default:
		return "unknown"
	}
}

// Event is a raw edit with the resulting full text
type Event struct {
	Kind EventKind
	Text string
	// Composing marks a plain edit that belongs to an uncommitted
	// composition. Front ends without composition events leave it false.
	Composing bool
}

// Tracker owns the EditableText of one session
type Tracker struct {
	mu        sync.Mutex
	text      EditableText
	composing bool

	onChange func(EditableText)
	onCommit func(string)
}

// NewTracker creates a tracker that forwards committed text to onCommit
func NewTracker(onCommit func(string)) *Tracker {
	return &Tracker{onCommit: onCommit}
}

// SetOnChange registers a callback for every accepted text change,
// committed or not
func (t *Tracker) SetOnChange(f func(EditableText)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = f
}

// Handle applies one raw edit event
func (t *Tracker) Handle(ev Event) {
	t.mu.Lock()

	commit := false
	changed := true
	switch ev.Kind {
	case CompositionStart:
		t.composing = true
		changed = ev.Text != t.text.Content
	case CompositionUpdate:
		t.composing = true
	case CompositionEnd:
		t.composing = false
		commit = true
	default:
		commit = !t.composing && !ev.Composing
	}

	if changed {
		t.text = newEditableText(ev.Text)
	}
	onChange, onCommit := t.onChange, t.onCommit
	text := t.text
	t.mu.Unlock()

	if changed && onChange != nil {
		onChange(text)
	}
	if commit && onCommit != nil {
		onCommit(text.Content)
	}
}

// Edit is a plain keystroke edit
func (t *Tracker) Edit(text string) {
	t.Handle(Event{Kind: Edit, Text: text})
}

// Paste replaces the text with pasted content
func (t *Tracker) Paste(text string) {
	t.Handle(Event{Kind: Paste, Text: text})
}

// StartComposition begins an IME composition
func (t *Tracker) StartComposition(text string) {
	t.Handle(Event{Kind: CompositionStart, Text: text})
}

// UpdateComposition shows intermediate composed text
func (t *Tracker) UpdateComposition(text string) {
	t.Handle(Event{Kind: CompositionUpdate, Text: text})
}

// EndComposition commits the final composed text
func (t *Tracker) EndComposition(text string) {
	t.Handle(Event{Kind: CompositionEnd, Text: text})
}

// Text returns the current text
func (t *Tracker) Text() EditableText {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Composing reports whether a composition is in progress
func (t *Tracker) Composing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.composing
}
