package parse

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
)

// Extract walks the conversation's node graph and returns the messages of the
// main branch in order. When the export records a current_node leaf pointer
// the path is resolved by walking parent links up from it; otherwise the
// traversal starts at the root and follows the first child at each branch.
//
// A malformed link (an id that is not in the mapping) or a cycle stops the
// walk: the messages collected so far are returned together with an error
// wrapping errs.ErrProcessing. Callers may report it and keep the prefix.
// Extract has no hidden state; calling it twice yields identical results.
func Extract(c *Conversation) ([]Message, error) {
	if len(c.Mapping) == 0 {
		return nil, nil
	}

	path, err := activePath(c)

	var msgs []Message
	for _, id := range path {
		node := c.Mapping[id]
		m, ok := nodeMessage(node)
		if ok {
			msgs = append(msgs, m)
		}
	}
	return msgs, err
}

// activePath resolves the ordered node ids of the main branch.
func activePath(c *Conversation) ([]string, error) {
	if c.CurrentNode != "" {
		if _, ok := c.Mapping[c.CurrentNode]; ok {
			return pathFromLeaf(c)
		}
	}
	return pathFromRoot(c)
}

// pathFromLeaf follows parent links from current_node to the root, then
// reverses. A broken parent link truncates the path at that point.
func pathFromLeaf(c *Conversation) ([]string, error) {
	var rev []string
	seen := make(map[string]bool)
	var walkErr error

	id := c.CurrentNode
	for id != "" {
		if seen[id] {
			walkErr = fmt.Errorf("%w: cycle at node %s", errs.ErrProcessing, id)
			break
		}
		seen[id] = true
		node, ok := c.Mapping[id]
		if !ok {
			walkErr = fmt.Errorf("%w: parent %s not in mapping", errs.ErrProcessing, id)
			break
		}
		rev = append(rev, id)
		id = node.Parent
	}

	// reverse into root-first order
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path, walkErr
}

// pathFromRoot descends from the root node, taking the first child at every
// branching point until a leaf is reached.
func pathFromRoot(c *Conversation) ([]string, error) {
	root, err := rootNode(c)
	if err != nil {
		return nil, err
	}

	var path []string
	seen := make(map[string]bool)

	id := root
	for id != "" {
		if seen[id] {
			return path, fmt.Errorf("%w: cycle at node %s", errs.ErrProcessing, id)
		}
		seen[id] = true
		node, ok := c.Mapping[id]
		if !ok {
			return path, fmt.Errorf("%w: child %s not in mapping", errs.ErrProcessing, id)
		}
		path = append(path, id)
		if len(node.Children) == 0 {
			break
		}
		id = node.Children[0]
	}
	return path, nil
}

// rootNode finds the node with no parent (or whose parent id is absent from
// the mapping). Ids are visited in sorted order so the choice is stable when
// the graph is malformed enough to contain several candidates.
func rootNode(c *Conversation) (string, error) {
	ids := make([]string, 0, len(c.Mapping))
	for id := range c.Mapping {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := c.Mapping[id]
		if node.Parent == "" {
			return id, nil
		}
		if _, ok := c.Mapping[node.Parent]; !ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no root node in mapping", errs.ErrProcessing)
}

// nodeMessage converts a node's payload into a Message. Nodes without a
// payload, without an author role, or with no text are skipped.
func nodeMessage(node Node) (Message, bool) {
	if node.Message == nil || node.Message.Author.Role == "" {
		return Message{}, false
	}
	text := partsText(node.Message.Content.Parts)
	if text == "" {
		return Message{}, false
	}
	return Message{
		Role:       node.Message.Author.Role,
		Text:       text,
		CreateTime: node.Message.CreateTime,
	}, true
}

// partsText joins the textual parts of a message. Parts are plain strings in
// text messages; multimodal parts are objects, kept only if they carry a
// "text" field.
func partsText(parts []json.RawMessage) string {
	var texts []string
	for _, p := range parts {
		var s string
		if err := json.Unmarshal(p, &s); err == nil {
			if s != "" {
				texts = append(texts, s)
			}
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(p, &obj); err == nil && obj.Text != "" {
			texts = append(texts, obj.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
