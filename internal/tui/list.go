package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
)

// linesPerItem is the number of terminal lines each conversation occupies.
const linesPerItem = 2

// renderList renders the left panel: the conversation list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No conversations")
	}

	var lines []string
	for i, s := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatSummaryLine(s, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatSummaryLine formats one conversation as two lines:
//
//	line 1: [>] category  date  title
//	line 2:     id (dimmed)
func formatSummaryLine(s meta.Summary, width int, selected bool) []string {
	var cat string
	switch s.Category {
	case classify.Project:
		cat = styleCatProject.Render("project")
	case classify.GPT:
		cat = styleCatGPT.Render("gpt    ")
	default:
		cat = styleCatPlain.Render("plain  ")
	}

	date := meta.FormatDate(s.CreateTime)
	if len(date) == 10 {
		date = date[5:] // MM-DD
	}

	title := strings.ReplaceAll(s.Title, "\n", " ")
	titleMax := width - 2 - 7 - 6 - 2 // prefix + category + date + padding
	if titleMax < 0 {
		titleMax = 0
	}
	if runewidth.StringWidth(title) > titleMax {
		title = runewidth.Truncate(title, titleMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s", cat, date, title)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	id := s.ID
	idMax := width - 4
	if idMax < 0 {
		idMax = 0
	}
	if runewidth.StringWidth(id) > idMax {
		id = runewidth.Truncate(id, idMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(id)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
