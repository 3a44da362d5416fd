// Package meta derives lightweight conversation summaries and caches them
// next to the source file so large exports are not reparsed on every run.
package meta

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
)

// Summary is the metadata-index entry for one conversation. The set of
// summary ids always equals the set of conversation ids in the current load.
type Summary struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    classify.Category `json:"category"`
	Timestamp   string            `json:"timestamp"`
	CreateTime  float64           `json:"create_time"`
	GizmoID     string            `json:"gizmo_id,omitempty"`
	ContentHash string            `json:"content_hash"`
}

// Label formats a summary for menu listings:
// [Category] [YYYY-MM-DD] Title (gizmo)
func (s Summary) Label() string {
	gizmo := s.GizmoID
	if gizmo == "" {
		gizmo = "None"
	}
	return fmt.Sprintf("[%s] [%s] %s (%s)", s.Category, FormatDate(s.CreateTime), s.Title, gizmo)
}

// Build runs classification and metadata extraction over every conversation.
func Build(convos []parse.Conversation) []Summary {
	summaries := make([]Summary, 0, len(convos))
	for i := range convos {
		c := &convos[i]
		summaries = append(summaries, Summary{
			ID:          defaultStr(c.ID, "unknown"),
			Title:       defaultStr(c.Title, "Untitled"),
			Category:    classify.Classify(c),
			Timestamp:   FormatTimestamp(c.CreateTime),
			CreateTime:  c.CreateTime,
			GizmoID:     c.GizmoID,
			ContentHash: Hash(c.Raw),
		})
	}
	return summaries
}

// Hash is the content hash used for both the whole source file and the
// per-conversation fragments: SHA-1, hex encoded.
func Hash(raw []byte) string {
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// FormatTimestamp renders an epoch as YYYY-MM-DD_HH-MM-SS in local time.
func FormatTimestamp(ts float64) string {
	if ts <= 0 {
		return "unknown_time"
	}
	return time.Unix(int64(ts), 0).Format("2006-01-02_15-04-05")
}

// FormatDate renders just the date portion of an epoch.
func FormatDate(ts float64) string {
	if ts <= 0 {
		return "unknown_date"
	}
	return time.Unix(int64(ts), 0).Format("2006-01-02")
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
