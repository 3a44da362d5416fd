// Package classify assigns each conversation a category from its content.
package classify

import (
	"strings"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
)

type Category string

const (
	Project Category = "Project"
	GPT     Category = "GPT"
	Plain   Category = "Plain"
)

// projectKeywords are markers of technical/project conversations. Checked
// against the lower-cased title plus message text.
var projectKeywords = []string{
	"```",
	"python",
	"javascript",
	"typescript",
	"golang",
	"stack trace",
	"traceback",
	"compile",
	"regex",
	"sql",
	"git ",
}

// gptKeywords are markers of conversations with a custom GPT.
var gptKeywords = []string{
	"custom gpt",
	"gizmo",
}

// Classify maps a conversation to exactly one category. Pure and
// deterministic: rules are checked in order (Project, GPT, Plain) and the
// first match wins.
func Classify(c *parse.Conversation) Category {
	body := contentText(c)

	if c.MemoryScope == "project_enabled" || containsAny(body, projectKeywords) {
		return Project
	}
	if hasGizmo(c.GizmoID) || containsAny(body, gptKeywords) {
		return GPT
	}
	return Plain
}

// contentText concatenates the title and the main-branch message text,
// lower-cased. A partial extraction is fine here: classification works off
// whatever text is reachable.
func contentText(c *parse.Conversation) string {
	var b strings.Builder
	b.WriteString(c.Title)
	msgs, _ := parse.Extract(c)
	for _, m := range msgs {
		b.WriteString("\n")
		b.WriteString(m.Text)
	}
	return strings.ToLower(b.String())
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// hasGizmo reports whether a gizmo id is meaningfully set. Some exports use
// the literal "None" instead of omitting the field.
func hasGizmo(id string) bool {
	return id != "" && id != "None" && id != "null"
}
