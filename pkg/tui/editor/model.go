// Package editor is the full-screen entry editor. Every change is handed to an
// autosave session; leaving the editor flushes and closes it.
package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/mindful/pkg/autosave"
	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/tui/theme"
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldBody
)

// SavedMsg reports an autosave commit to the model.
type SavedMsg autosave.Result

// Options control initial state for the editor.
type Options struct {
	// Entry is edited in place when set; otherwise a new entry is started.
	Entry   *entry.Entry
	Session *autosave.Session
	Theme   *theme.Theme
}

// Model renders the editor.
type Model struct {
	session *autosave.Session
	theme   theme.Theme

	title textinput.Model
	body  textarea.Model
	focus focusField

	moods     []entry.MoodInfo
	moodIndex int
	custom    string
	titleFont string

	last    entry.Draft
	status  string
	errMsg  string
	savedAt time.Time

	width  int
	height int
	done   bool
}

// New constructs the editor bound to a session.
func New(opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write what's on your mind…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""

	m := &Model{
		session: opts.Session,
		theme:   th,
		title:   ti,
		body:    ta,
		moods:   append([]entry.MoodInfo{{Mood: entry.MoodNone, Label: "None"}}, entry.Moods()...),
	}

	if e := opts.Entry; e != nil {
		m.title.SetValue(e.Title)
		m.body.SetValue(entry.Paragraphs(e.Content))
		m.custom = e.CustomColor
		m.titleFont = e.TitleFont
		for i, info := range m.moods {
			if info.Mood == e.Mood {
				m.moodIndex = i
			}
		}
	}
	m.last = m.Draft()
	m.SetSize(80, 24)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Draft is the editor state as the store sees it.
func (m *Model) Draft() entry.Draft {
	return entry.Draft{
		Title:       strings.TrimSpace(m.title.Value()),
		Content:     entry.FromParagraphs(m.body.Value()),
		Mood:        m.moods[m.moodIndex].Mood,
		CustomColor: m.custom,
		TitleFont:   m.titleFont,
	}
}

// Done reports whether the user left the editor.
func (m *Model) Done() bool {
	return m.done
}

// SetSize adapts the fields to the terminal.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	inner := width - 10
	if inner < 20 {
		inner = 20
	}
	m.title.Width = inner
	m.body.SetWidth(inner)
	bodyHeight := height - 14
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	m.body.SetHeight(bodyHeight)
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case SavedMsg:
		m.saved(autosave.Result(msg))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.leave()
			return m, tea.Quit
		case "ctrl+s":
			m.flush()
			return m, nil
		case "tab", "shift+tab":
			return m, m.toggleFocus()
		case "ctrl+o":
			m.moodIndex = (m.moodIndex + 1) % len(m.moods)
			m.changed()
			return m, nil
		case "enter":
			if m.focus == fieldTitle {
				return m, m.toggleFocus()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	m.changed()
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldBody
		m.title.Blur()
		return m.body.Focus()
	}
	m.focus = fieldTitle
	m.body.Blur()
	return m.title.Focus()
}

// changed forwards the draft to autosave when it differs from the last one.
func (m *Model) changed() {
	d := m.Draft()
	if d == m.last {
		return
	}
	m.last = d
	m.errMsg = ""
	if m.session != nil {
		m.session.Edit(d)
		m.status = "editing…"
	}
}

func (m *Model) flush() {
	if m.session == nil {
		return
	}
	id, err := m.session.Flush()
	m.saved(autosave.Result{ID: id, Err: err})
}

func (m *Model) leave() {
	if m.done {
		return
	}
	m.done = true
	m.flush()
	if m.session != nil {
		m.session.Close()
	}
}

func (m *Model) saved(r autosave.Result) {
	if r.Err != nil {
		m.errMsg = r.Err.Error()
		return
	}
	if r.ID == "" {
		return
	}
	m.savedAt = time.Now()
	m.status = fmt.Sprintf("saved %s", m.savedAt.Format("15:04:05"))
}

func (m *Model) color() string {
	if m.custom != "" {
		return m.custom
	}
	return m.moods[m.moodIndex].Mood.Swatch()
}

// View renders the editor.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	label := func(name string, f focusField) string {
		if m.focus == f {
			return m.theme.Editor.FocusedLabel.Render(name)
		}
		return m.theme.Editor.Label.Render(name)
	}

	chips := make([]string, 0, len(m.moods))
	for i, info := range m.moods {
		name := info.Label
		if i == m.moodIndex {
			name = "[" + name + "]"
		}
		chips = append(chips, m.theme.Swatch(info.Swatch, name))
	}

	lines := []string{
		label("Title", fieldTitle),
		m.theme.Panel.Title.Render(m.title.View()),
		"",
		label("Entry", fieldBody),
		m.body.View(),
		"",
		m.theme.Editor.Label.Render("Mood ") + lipgloss.JoinHorizontal(lipgloss.Top, chips...),
	}
	body := m.theme.Tinted(m.color()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	footer := m.theme.Footer.Status.Render(m.status)
	if m.errMsg != "" {
		footer = m.theme.Footer.Error.Render(m.errMsg)
	}
	help := m.theme.Footer.Help.Render("tab switch field • ctrl+o mood • ctrl+s save • esc done")

	return lipgloss.JoinVertical(lipgloss.Left, body, footer, help)
}
