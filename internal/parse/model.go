package parse

import "encoding/json"

// Conversation is one record of a conversations.json export. The mapping is
// an arena of nodes keyed by node id; parent/child relations are id
// references, never live pointers. Nothing here is mutated after load.
type Conversation struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	CreateTime  float64         `json:"create_time"`
	UpdateTime  float64         `json:"update_time"`
	CurrentNode string          `json:"current_node"`
	GizmoID     string          `json:"gizmo_id"`
	MemoryScope string          `json:"memory_scope"`
	Mapping     map[string]Node `json:"mapping"`

	// Raw is the conversation's original JSON fragment, kept for hashing.
	Raw []byte `json:"-"`
}

type Node struct {
	ID       string       `json:"id"`
	Parent   string       `json:"parent"`
	Children []string     `json:"children"`
	Message  *NodeMessage `json:"message"`
}

type NodeMessage struct {
	Author     Author  `json:"author"`
	CreateTime float64 `json:"create_time"`
	Content    Content `json:"content"`
}

type Author struct {
	Role string `json:"role"` // "user", "assistant", "system", "tool"
}

// Content parts are usually strings but may be multimodal objects;
// RawMessage defers decoding until extraction.
type Content struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts"`
}

// Message is one (role, text) pair on the active branch of a conversation.
// Produced by Extract, consumed by the renderer.
type Message struct {
	Role       string
	Text       string
	CreateTime float64
}
