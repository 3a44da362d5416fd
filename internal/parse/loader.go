package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
)

// LoadFile reads a conversations.json export and parses every conversation.
// The raw file bytes are returned alongside for content hashing.
func LoadFile(path string) ([]Conversation, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %v", errs.ErrFileOperation, path, err)
	}
	convos, err := Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return convos, raw, nil
}

// Parse decodes an export into its conversations. There is no partial
// success: either every record parses or the whole load fails.
func Parse(raw []byte) ([]Conversation, error) {
	var fragments []json.RawMessage
	if err := json.Unmarshal(raw, &fragments); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidJSON, err)
	}

	convos := make([]Conversation, 0, len(fragments))
	for i, frag := range fragments {
		var c Conversation
		if err := json.Unmarshal(frag, &c); err != nil {
			return nil, fmt.Errorf("%w: conversation %d: %v", errs.ErrInvalidJSON, i, err)
		}
		c.Raw = frag
		convos = append(convos, c)
	}
	return convos, nil
}
