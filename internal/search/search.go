// Package search filters and orders conversation summaries for display.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
)

// Filter returns the summaries whose titles contain the keyword,
// case-insensitively, preserving input order. An empty or whitespace-only
// keyword is rejected rather than matching everything.
func Filter(summaries []meta.Summary, keyword string) ([]meta.Summary, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil, fmt.Errorf("%w: search keyword is empty", errs.ErrValidation)
	}

	var matched []meta.Summary
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Title), kw) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// ByCategory returns the summaries of one category, preserving input order.
func ByCategory(summaries []meta.Summary, category classify.Category) []meta.Summary {
	var matched []meta.Summary
	for _, s := range summaries {
		if s.Category == category {
			matched = append(matched, s)
		}
	}
	return matched
}

// SortByTime returns a copy ordered by creation time. Ties keep input order.
func SortByTime(summaries []meta.Summary, ascending bool) []meta.Summary {
	sorted := make([]meta.Summary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].CreateTime < sorted[j].CreateTime
		}
		return sorted[i].CreateTime > sorted[j].CreateTime
	})
	return sorted
}
