// Package export writes rendered conversations to markdown files and zip
// archives.
package export

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
)

// Item pairs a summary with its rendered markdown.
type Item struct {
	Summary meta.Summary
	Content string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeTitle replaces filesystem-unsafe characters with underscores and
// caps the result at 60 bytes.
func SanitizeTitle(title string) string {
	safe := unsafeChars.ReplaceAllString(title, "_")
	if len(safe) > 60 {
		safe = safe[:60]
	}
	return safe
}

// Filename builds the export name: CATEGORY-TIMESTAMP-Sanitized_Title__id.md
func Filename(s meta.Summary) string {
	return fmt.Sprintf("%s-%s-%s__%s.md",
		strings.ToUpper(string(s.Category)), s.Timestamp, SanitizeTitle(s.Title), s.ID)
}

// WriteSingle writes one conversation to its own markdown file and returns
// the path.
func WriteSingle(item Item, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %v", errs.ErrFileOperation, err)
	}
	path := filepath.Join(outputDir, Filename(item.Summary))
	if err := os.WriteFile(path, []byte(item.Content), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", errs.ErrFileOperation, path, err)
	}
	return path, nil
}

// WriteZip bundles the items into <outputDir>/<baseName>.zip, one markdown
// entry per conversation. The archive is written to a temp file and renamed
// only on full success; any failure removes the temp file so no partial zip
// is ever left behind.
func WriteZip(items []Item, outputDir, baseName string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: nothing to export", errs.ErrExport)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %v", errs.ErrExport, err)
	}

	tmp, err := os.CreateTemp(outputDir, ".zip-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", errs.ErrExport, err)
	}
	tmpPath := tmp.Name()
	zw := zip.NewWriter(tmp)

	abort := func(err error) (string, error) {
		zw.Close()
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}

	for _, item := range items {
		if item.Summary.ID == "" {
			return abort(fmt.Errorf("%w: conversation %q has no id", errs.ErrExport, item.Summary.Title))
		}
		w, err := zw.Create(Filename(item.Summary))
		if err != nil {
			return abort(fmt.Errorf("%w: entry %s: %v", errs.ErrExport, item.Summary.ID, err))
		}
		if _, err := w.Write([]byte(item.Content)); err != nil {
			return abort(fmt.Errorf("%w: entry %s: %v", errs.ErrExport, item.Summary.ID, err))
		}
	}

	if err := zw.Close(); err != nil {
		return abort(fmt.Errorf("%w: finalize archive: %v", errs.ErrExport, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close archive: %v", errs.ErrExport, err)
	}

	zipPath := filepath.Join(outputDir, baseName+".zip")
	if err := os.Rename(tmpPath, zipPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: finalize %s: %v", errs.ErrExport, zipPath, err)
	}
	return zipPath, nil
}
