// Package tui is the terminal front end of a translation session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/snonux/libretranslator/internal/clipboard"
	"codeberg.org/snonux/libretranslator/internal/job"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/session"
)

// RefreshMsg tells the model the session changed
type RefreshMsg struct{}

type pane int

const (
	paneSource pane = iota
	paneResult
)

// Model is the bubbletea model driving a session
type Model struct {
	session *session.Session
	loc     *locale.Provider
	keys    keyMap
	help    help.Model

	source   textarea.Model
	result   textarea.Model
	password textinput.Model

	snap          session.Snapshot
	focus         pane
	width, height int

	// readClipboard is swapped in tests
	readClipboard func() (string, error)
}

// NewModel creates a model for s
func NewModel(s *session.Session) Model {
	m := Model{
		session:       s,
		loc:           s.Locale(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		source:        textarea.New(),
		result:        textarea.New(),
		password:      textinput.New(),
		readClipboard: clipboard.Read,
	}
	m.source.ShowLineNumbers = false
	m.result.ShowLineNumbers = false
	m.source.CharLimit = 0
	m.result.CharLimit = 0
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '*'

	if s.Locked() {
		m.password.Focus()
	} else {
		m.source.Focus()
	}
	m.applySnapshot(s.Snapshot())
	return m
}

// Run starts a session and the terminal UI until the user quits
func Run(ctx context.Context, cfg session.Config) error {
	s, err := session.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(NewModel(s), tea.WithAltScreen(), tea.WithContext(ctx))
	// Updates can fire from inside Update, where a blocking Send would stall
	// the event loop.
	s.SetOnUpdate(func(session.Snapshot) {
		go p.Send(RefreshMsg{})
	})
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case RefreshMsg:
		m.applySnapshot(m.session.Snapshot())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !m.snap.Unlocked {
			return m.updateGate(msg)
		}
		return m.updateKey(msg)
	}

	return m.updateEditors(msg)
}

func (m Model) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if err := m.session.Unlock(m.password.Value()); err != nil {
			m.password.SetValue("")
		} else {
			m.password.Blur()
			m.source.Focus()
		}
		m.applySnapshot(m.session.Snapshot())
		return m, nil
	}
	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Translate):
		m.session.Translate()
	case key.Matches(msg, m.keys.Swap):
		m.session.Swap()
	case key.Matches(msg, m.keys.Auto):
		m.session.SetAutoTranslate(!m.snap.AutoTranslate)
	case key.Matches(msg, m.keys.NextSource):
		_ = m.session.SetSource(nextCode(language.Sources(), m.snap.Pair.Source))
	case key.Matches(msg, m.keys.NextTarget):
		_ = m.session.SetTarget(nextCode(language.Targets(), m.snap.Pair.Target))
	case key.Matches(msg, m.keys.CopySource):
		_ = m.session.CopySource()
	case key.Matches(msg, m.keys.CopyResult):
		_ = m.session.CopyResult()
	case key.Matches(msg, m.keys.UILanguage):
		m.session.SetUILanguage(nextUILanguage(m.snap.UILanguage))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
	case key.Matches(msg, m.keys.Paste) && m.focus == paneSource:
		m.paste()
	default:
		return m.updateEditors(msg)
	}
	m.applySnapshot(m.session.Snapshot())
	return m, nil
}

// updateEditors forwards msg to the focused editor and reports edits
func (m Model) updateEditors(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case paneSource:
		before := m.source.Value()
		m.source, cmd = m.source.Update(msg)
		if after := m.source.Value(); after != before {
			if km, ok := msg.(tea.KeyMsg); ok && km.Paste {
				m.session.Paste(after)
			} else {
				m.session.Edit(after)
			}
		}
	case paneResult:
		before := m.result.Value()
		m.result, cmd = m.result.Update(msg)
		if after := m.result.Value(); after != before {
			m.session.EditResult(after)
		}
	}
	m.applySnapshot(m.session.Snapshot())
	return m, cmd
}

func (m *Model) paste() {
	text, err := m.readClipboard()
	if err != nil {
		logging.Warnf("paste failed: %v", err)
		return
	}
	m.source.InsertString(text)
	m.session.Paste(m.source.Value())
}

func (m *Model) toggleFocus() {
	if m.focus == paneSource {
		m.focus = paneResult
		m.source.Blur()
		m.result.Focus()
		return
	}
	m.focus = paneSource
	m.result.Blur()
	m.source.Focus()
}

func (m *Model) applySnapshot(s session.Snapshot) {
	m.snap = s
	if m.result.Value() != s.Result {
		m.result.SetValue(s.Result)
	}
	m.source.Placeholder = m.loc.T(locale.InputPlaceholder)
	m.result.Placeholder = m.loc.T(locale.OutputPlaceholder)
	m.password.Placeholder = m.loc.T(locale.EnterPassword)
}

func (m *Model) resize() {
	w := (m.width - 8) / 2
	if w < 10 {
		w = 10
	}
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	m.source.SetWidth(w)
	m.source.SetHeight(h)
	m.result.SetWidth(w)
	m.result.SetHeight(h)
	m.help.Width = m.width
}

func (m Model) View() string {
	if !m.snap.Unlocked {
		return m.gateView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T(locale.Title)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.loc.Tf(locale.PoweredBy, map[string]any{"Provider": m.session.Provider()})))
	b.WriteString("\n")
	b.WriteString(m.pairLine())
	b.WriteString("\n")

	left := m.paneView(m.source.View(), m.snap.Source.Length, m.focus == paneSource)
	right := m.paneView(m.result.View(), m.snap.ResultLength, m.focus == paneResult)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) pairLine() string {
	auto := "off"
	if m.snap.AutoTranslate {
		auto = "on"
	}
	return fmt.Sprintf("%s  →  %s   %s",
		pairStyle.Render(m.loc.Label(m.snap.Pair.Source)),
		pairStyle.Render(m.loc.Label(m.snap.Pair.Target)),
		dimStyle.Render(fmt.Sprintf("[%s: %s]", m.loc.T(locale.AutoTranslate), auto)))
}

func (m Model) paneView(body string, chars int, focused bool) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	count := dimStyle.Render(fmt.Sprintf("%s: %d", m.loc.T(locale.CharCount), chars))
	return style.Render(body + "\n" + count)
}

func (m Model) statusLine() string {
	if m.snap.HasMessage {
		if m.snap.Message.IsError {
			return errorStyle.Render(m.snap.Message.Text)
		}
		return successStyle.Render(m.snap.Message.Text)
	}
	if m.snap.State == job.Pending {
		return pendingStyle.Render(m.loc.T(locale.Translating))
	}
	return ""
}

func (m Model) gateView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T(locale.Title)))
	b.WriteString("\n\n")
	b.WriteString(m.loc.T(locale.EnterPassword))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")
	if m.snap.HasMessage && m.snap.Message.IsError {
		b.WriteString(errorStyle.Render(m.snap.Message.Text))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter " + m.loc.T(locale.Submit) + " • esc quit"))
	return b.String()
}

// nextCode returns the code after cur in codes, wrapping around
func nextCode(codes []language.Code, cur language.Code) language.Code {
	for i, c := range codes {
		if c == cur {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}

func nextUILanguage(cur string) string {
	for i, l := range locale.Supported {
		if l == cur {
			return locale.Supported[(i+1)%len(locale.Supported)]
		}
	}
	return locale.Fallback
}
