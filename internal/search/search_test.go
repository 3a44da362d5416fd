package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
)

var fixtures = []meta.Summary{
	{ID: "a1", Title: "Learn Python basics", Category: classify.Project, CreateTime: 300},
	{ID: "a2", Title: "Dinner plans", Category: classify.Plain, CreateTime: 100},
	{ID: "a3", Title: "python packaging question", Category: classify.Project, CreateTime: 200},
	{ID: "a4", Title: "Travel ideas", Category: classify.Plain, CreateTime: 200},
}

func ids(summaries []meta.Summary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.ID
	}
	return out
}

func TestFilterCaseInsensitive(t *testing.T) {
	lower, err := Filter(fixtures, "python")
	require.NoError(t, err)
	mixed, err := Filter(fixtures, "PyThOn")
	require.NoError(t, err)

	require.Equal(t, []string{"a1", "a3"}, ids(lower))
	require.Equal(t, lower, mixed)
}

func TestFilterNoMatch(t *testing.T) {
	matched, err := Filter(fixtures, "zebra")
	require.NoError(t, err)
	require.Empty(t, matched)
}

func TestFilterEmptyKeyword(t *testing.T) {
	for _, kw := range []string{"", "   ", "\t"} {
		_, err := Filter(fixtures, kw)
		require.ErrorIs(t, err, errs.ErrValidation, "keyword: %q", kw)
	}
}

func TestFilterTrimsKeyword(t *testing.T) {
	matched, err := Filter(fixtures, "  dinner ")
	require.NoError(t, err)
	require.Equal(t, []string{"a2"}, ids(matched))
}

func TestByCategory(t *testing.T) {
	require.Equal(t, []string{"a1", "a3"}, ids(ByCategory(fixtures, classify.Project)))
	require.Equal(t, []string{"a2", "a4"}, ids(ByCategory(fixtures, classify.Plain)))
	require.Empty(t, ByCategory(fixtures, classify.GPT))
}

func TestSortByTime(t *testing.T) {
	asc := SortByTime(fixtures, true)
	require.Equal(t, []string{"a2", "a3", "a4", "a1"}, ids(asc)) // ties keep input order

	desc := SortByTime(fixtures, false)
	require.Equal(t, []string{"a1", "a3", "a4", "a2"}, ids(desc))

	// input untouched
	require.Equal(t, []string{"a1", "a2", "a3", "a4"}, ids(fixtures))
}
