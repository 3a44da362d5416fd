package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	data := []byte(`[` + linearConv + `]`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	convos, raw, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, raw)
	require.Len(t, convos, 1)
	require.Equal(t, "c1", convos[0].ID)
	require.Equal(t, "Linear", convos[0].Title)
	require.NotEmpty(t, convos[0].Raw)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, errs.ErrFileOperation)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`[{"id": "x"`))
	require.ErrorIs(t, err, errs.ErrInvalidJSON)
}

func TestParseNotAnArray(t *testing.T) {
	_, err := Parse([]byte(`{"id": "x"}`))
	require.ErrorIs(t, err, errs.ErrInvalidJSON)
}

func TestParseKeepsRawFragments(t *testing.T) {
	convos, err := Parse([]byte(`[{"id": "a"}, {"id": "b"}]`))
	require.NoError(t, err)
	require.Len(t, convos, 2)
	require.JSONEq(t, `{"id": "a"}`, string(convos[0].Raw))
	require.JSONEq(t, `{"id": "b"}`, string(convos[1].Raw))
}
