// Package tui is the interactive conversation browser: a filterable list on
// the left, a live preview of the export document on the right. Enter
// exports the selected conversation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/search"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/session"
)

type model struct {
	sess       *session.Session
	all        []meta.Summary // newest first
	results    []meta.Summary
	cursor     int
	listOffset int

	filterInput textinput.Model
	preview     viewport.Model
	previewID   string // id of the currently rendered preview

	width    int
	height   int
	ready    bool
	quitting bool

	selected *meta.Summary
}

func initialModel(sess *session.Session, query string) model {
	ti := textinput.New()
	ti.Placeholder = "Filter titles..."
	ti.Focus()
	ti.SetValue(query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	all := search.SortByTime(sess.Summaries, false)

	m := model{
		sess:        sess,
		all:         all,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
	m.results = m.filter(query)
	return m
}

// Run starts the browser and blocks until it exits. If the user selects a
// conversation, it is exported and the file path printed.
func Run(sess *session.Session, query string) error {
	// Parse up front: preview commands run on goroutines and must not
	// trigger the session's lazy load concurrently.
	if err := sess.Preload(); err != nil {
		return err
	}

	p := tea.NewProgram(initialModel(sess, query), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected != nil {
		path, err := sess.ExportOne(*fm.selected)
		if err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n", path)
	}
	return nil
}

// filter narrows the summary list by title keyword; empty shows everything.
func (m model) filter(query string) []meta.Summary {
	matched, err := search.Filter(m.all, query)
	if err != nil {
		return m.all
	}
	return matched
}

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	id      string
	content string
	err     error
}

func loadPreviewCmd(sess *session.Session, sum meta.Summary) tea.Cmd {
	return func() tea.Msg {
		content, err := sess.Render(sum)
		return previewRenderedMsg{id: sum.ID, content: content, err: err}
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if len(m.results) > 0 {
		cmds = append(cmds, loadPreviewCmd(m.sess, m.results[0]))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		if len(m.results) > 0 && m.cursor < len(m.results) {
			m.previewID = ""
			cmds = append(cmds, loadPreviewCmd(m.sess, m.results[m.cursor]))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.results) > 0 && m.cursor < len(m.results) {
				s := m.results[m.cursor]
				m.selected = &s
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Remaining keys go to the filter input.
		var tiCmd tea.Cmd
		prev := m.filterInput.Value()
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if q := m.filterInput.Value(); q != prev {
			m.results = m.filter(q)
			m.cursor = 0
			m.listOffset = 0
			if len(m.results) > 0 {
				cmds = append(cmds, m.loadCurrentPreview())
			} else {
				m.preview.SetContent("")
				m.previewID = ""
			}
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		// Drop stale renders for a row the cursor already left.
		if len(m.results) == 0 || m.cursor >= len(m.results) || m.results[m.cursor].ID != msg.id {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		m.previewID = msg.id
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	return styleStatusBar.Render(fmt.Sprintf(
		"%d conversations | up/dn navigate | C-u/C-d preview | Enter export | Esc quit",
		len(m.results)))
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return nil
	}
	s := m.results[m.cursor]
	if s.ID == m.previewID {
		return nil
	}
	return loadPreviewCmd(m.sess, s)
}
