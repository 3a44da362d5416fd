// Package session ties the loader, metadata index, renderer, and export
// engine together for the menu and the CLI commands.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/export"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/render"
)

// Session holds one run's view of a conversations.json export: the summaries
// (from the cache when fresh) and, only once something needs message bodies,
// the fully parsed conversations.
type Session struct {
	SourcePath string
	OutputDir  string
	Summaries  []meta.Summary

	// Rebuilt reports whether the metadata cache was rebuilt on open.
	Rebuilt bool

	convos map[string]*parse.Conversation
}

// Open loads the metadata index for a source file, rebuilding the cache when
// the file changed.
func Open(sourcePath, outputDir string) (*Session, error) {
	summaries, rebuilt, err := meta.LoadOrRebuild(sourcePath)
	if err != nil {
		return nil, err
	}
	return &Session{
		SourcePath: sourcePath,
		OutputDir:  outputDir,
		Summaries:  summaries,
		Rebuilt:    rebuilt,
	}, nil
}

// Preload parses the source file eagerly. The browse TUI calls this before
// rendering previews from command goroutines so the lazy parse never races.
func (s *Session) Preload() error {
	return s.ensureLoaded()
}

func (s *Session) ensureLoaded() error {
	if s.convos != nil {
		return nil
	}
	convos, _, err := parse.LoadFile(s.SourcePath)
	if err != nil {
		return err
	}
	s.convos = make(map[string]*parse.Conversation, len(convos))
	for i := range convos {
		s.convos[convos[i].ID] = &convos[i]
	}
	return nil
}

// Conversation returns the full record for an id, parsing the source file on
// first use. The parse happens at most once per session.
func (s *Session) Conversation(id string) (*parse.Conversation, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	c, ok := s.convos[id]
	if !ok {
		return nil, fmt.Errorf("%w: conversation %s not in source file", errs.ErrProcessing, id)
	}
	return c, nil
}

// Render extracts the active branch of a conversation and renders its
// markdown document. A truncated extraction is reported as a warning and the
// partial transcript is still rendered; a conversation with nothing
// extractable is an export error.
func (s *Session) Render(summary meta.Summary) (string, error) {
	c, err := s.Conversation(summary.ID)
	if err != nil {
		return "", err
	}
	msgs, err := parse.Extract(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %s: %v\n", summary.ID, err)
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("%w: %s has no extractable messages", errs.ErrExport, summary.ID)
	}
	return render.Markdown(summary, msgs), nil
}

// ExportOne writes a single conversation to the output directory and returns
// the file path.
func (s *Session) ExportOne(summary meta.Summary) (string, error) {
	content, err := s.Render(summary)
	if err != nil {
		return "", err
	}
	return export.WriteSingle(export.Item{Summary: summary, Content: content}, s.OutputDir)
}

// ExportZip bundles the given summaries into one archive. Conversations that
// fail to render are reported and skipped; the zip itself is all-or-nothing.
func (s *Session) ExportZip(summaries []meta.Summary, baseName string) (string, int, error) {
	var items []export.Item
	for _, sum := range summaries {
		content, err := s.Render(sum)
		if err != nil {
			if errors.Is(err, errs.ErrExport) || errors.Is(err, errs.ErrProcessing) {
				fmt.Fprintf(os.Stderr, "WARN: skip %s: %v\n", sum.ID, err)
				continue
			}
			return "", 0, err
		}
		items = append(items, export.Item{Summary: sum, Content: content})
	}

	zipPath, err := export.WriteZip(items, s.OutputDir, baseName)
	if err != nil {
		return "", 0, err
	}
	return zipPath, len(items), nil
}

// FindByID returns the summary with the given conversation id.
func (s *Session) FindByID(id string) (meta.Summary, bool) {
	for _, sum := range s.Summaries {
		if sum.ID == id {
			return sum, true
		}
	}
	return meta.Summary{}, false
}
