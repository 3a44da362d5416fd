// Package render turns extracted messages and their summary into the
// markdown document written on export.
package render

import (
	"fmt"
	"strings"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
)

// Markdown renders one conversation document: a frontmatter block, a level-1
// heading, then one block per message. Pure function; identical inputs yield
// byte-identical output.
func Markdown(s meta.Summary, msgs []parse.Message) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", s.Title)
	fmt.Fprintf(&b, "category: %q\n", string(s.Category))
	fmt.Fprintf(&b, "timestamp: %q\n", s.Timestamp)
	fmt.Fprintf(&b, "id: %q\n", s.ID)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", s.Title)

	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**%s:**\n%s\n", strings.ToUpper(m.Role), m.Text)
	}

	return b.String()
}
