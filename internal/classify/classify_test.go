package classify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
)

func convWithText(t *testing.T, title, text string) *parse.Conversation {
	t.Helper()
	c := &parse.Conversation{
		ID:          "c",
		Title:       title,
		CurrentNode: "n2",
		Mapping: map[string]parse.Node{
			"n1": {ID: "n1", Children: []string{"n2"}},
			"n2": {ID: "n2", Parent: "n1", Message: &parse.NodeMessage{
				Author:  parse.Author{Role: "user"},
				Content: parse.Content{Parts: []json.RawMessage{marshal(t, text)}},
			}},
		},
	}
	return c
}

func marshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestClassifyProjectScope(t *testing.T) {
	c := convWithText(t, "Weekend notes", "see you there")
	c.MemoryScope = "project_enabled"
	require.Equal(t, Project, Classify(c))
}

func TestClassifyProjectMarkers(t *testing.T) {
	for _, text := range []string{
		"here is a snippet:\n```\nx = 1\n```",
		"I keep getting a Traceback when running it",
		"how do I write this in Python?",
	} {
		require.Equal(t, Project, Classify(convWithText(t, "Help", text)), "text: %q", text)
	}
}

func TestClassifyProjectFromTitle(t *testing.T) {
	require.Equal(t, Project, Classify(convWithText(t, "SQL window functions", "explain please")))
}

func TestClassifyGPT(t *testing.T) {
	c := convWithText(t, "Chat", "hello")
	c.GizmoID = "g-abc123"
	require.Equal(t, GPT, Classify(c))

	require.Equal(t, GPT, Classify(convWithText(t, "Chat", "I built a Custom GPT for this")))
}

func TestClassifyGizmoPlaceholdersIgnored(t *testing.T) {
	for _, id := range []string{"", "None", "null"} {
		c := convWithText(t, "Chat", "hello")
		c.GizmoID = id
		require.Equal(t, Plain, Classify(c), "gizmo id: %q", id)
	}
}

func TestClassifyProjectBeatsGPT(t *testing.T) {
	// A conversation matching both rule sets lands in Project: rules are
	// ordered and the first match wins.
	c := convWithText(t, "Chat", "my custom gpt emits a stack trace")
	c.GizmoID = "g-abc123"
	require.Equal(t, Project, Classify(c))
}

func TestClassifyPlainFallback(t *testing.T) {
	require.Equal(t, Plain, Classify(convWithText(t, "Dinner plans", "italian tonight?")))
}

func TestClassifyDeterministic(t *testing.T) {
	c := convWithText(t, "Chat", "plain text")
	first := Classify(c)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Classify(c))
	}
}
