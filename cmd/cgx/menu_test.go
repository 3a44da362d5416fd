package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/session"
)

const exportFixture = `[
	{"id": "a1", "title": "Learn Python basics", "create_time": 1700000000,
	 "current_node": "n2",
	 "mapping": {
		"n1": {"id": "n1", "children": ["n2"]},
		"n2": {"id": "n2", "parent": "n1", "children": [],
			"message": {"author": {"role": "user"},
				"content": {"parts": ["How do I start with Python?"]}}}
	 }},
	{"id": "a2", "title": "Dinner plans", "create_time": 1700000100,
	 "current_node": "m2",
	 "mapping": {
		"m1": {"id": "m1", "children": ["m2"]},
		"m2": {"id": "m2", "parent": "m1", "children": [],
			"message": {"author": {"role": "user"},
				"content": {"parts": ["Italian tonight?"]}}}
	 }}
]`

// scriptedMenu builds a menu whose input is the given lines and whose output
// is captured in the returned buffer.
func scriptedMenu(t *testing.T, lines ...string) (*menu, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "conversations.json")
	require.NoError(t, os.WriteFile(source, []byte(exportFixture), 0o644))

	sess, err := session.Open(source, filepath.Join(dir, "out"))
	require.NoError(t, err)

	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	return &menu{sess: sess, in: in, out: &out}, &out
}

func TestMenuQuit(t *testing.T) {
	m, out := scriptedMenu(t, "q")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
	require.Contains(t, out.String(), "Select category to browse:")
}

func TestMenuEOFQuits(t *testing.T) {
	m, _ := scriptedMenu(t) // single empty line, then EOF
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
}

func TestMenuInvalidChoiceReprompts(t *testing.T) {
	m, out := scriptedMenu(t, "7", "q")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
	require.Contains(t, out.String(), "Invalid choice")
}

func TestMenuBrowseCategoryAndExport(t *testing.T) {
	// choice 0 (Project) lists only a1; blank range shows all; pick 0
	m, out := scriptedMenu(t, "0", "", "0")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)

	s := out.String()
	require.Contains(t, s, "Learn Python basics")
	require.NotContains(t, s, "Dinner plans")
	require.Contains(t, s, "Saved: ")
	require.Contains(t, s, "Learn_Python_basics__a1.md")
}

func TestMenuEmptyCategory(t *testing.T) {
	// no GPT conversations in the fixture
	m, out := scriptedMenu(t, "1", "q")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
	require.Contains(t, out.String(), "No conversations in this selection.")
}

func TestMenuFuzzySearchExport(t *testing.T) {
	m, out := scriptedMenu(t, "5", "dinner", "0")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)

	s := out.String()
	require.Contains(t, s, "--- Matches (1 results) ---")
	require.Contains(t, s, "Dinner plans")
	require.Contains(t, s, "Dinner_plans__a2.md")
}

func TestMenuFuzzySearchEmptyKeywordReprompts(t *testing.T) {
	m, out := scriptedMenu(t, "5", "", "dinner", "0")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
	require.Contains(t, out.String(), "Please try again.")
}

func TestMenuFuzzyZipExport(t *testing.T) {
	m, out := scriptedMenu(t, "5", "plans", "zip")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)

	s := out.String()
	require.Contains(t, s, "Exported 1 conversations to ")
	require.Contains(t, s, "fuzzy_matches_plans.zip")
}

func TestMenuBadIndexReprompts(t *testing.T) {
	// out-of-range selection is a validation error: back to the top menu
	m, out := scriptedMenu(t, "4", "", "9", "q")
	require.ErrorIs(t, m.run(), errs.ErrUserExit)
	require.Contains(t, out.String(), "Input Error")
}

func TestParseRange(t *testing.T) {
	spec, err := parseRange("", 10)
	require.NoError(t, err)
	require.True(t, spec.all)

	spec, err = parseRange("5", 10)
	require.NoError(t, err)
	require.Equal(t, 5, spec.page)

	spec, err = parseRange("2-7", 10)
	require.NoError(t, err)
	require.Equal(t, 2, spec.start)
	require.Equal(t, 7, spec.end)

	for _, bad := range []string{"x", "-3", "7-2", "0-10", "2-x"} {
		_, err := parseRange(bad, 10)
		require.ErrorIs(t, err, errs.ErrValidation, "input: %q", bad)
	}
}

func TestParseIndex(t *testing.T) {
	idx, err := parseIndex("3", 5)
	require.NoError(t, err)
	require.Equal(t, 3, idx)

	for _, bad := range []string{"", "x", "-1", "5"} {
		_, err := parseIndex(bad, 5)
		require.ErrorIs(t, err, errs.ErrValidation, "input: %q", bad)
	}
}
