package meta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/fsutil"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/parse"
)

// schemaVersion should be bumped whenever the summary fields or the
// classification rules change, forcing a full rebuild of stale caches.
const schemaVersion = 1

// cacheFile is the serialized form of the metadata index, stored next to the
// source as <source>.metadata.
type cacheFile struct {
	SchemaVersion int       `json:"schema_version"`
	SourceHash    string    `json:"source_hash"`
	Summaries     []Summary `json:"summaries"`
}

// CachePath returns the side-cache location for a source file.
func CachePath(source string) string {
	return source + ".metadata"
}

// LoadOrRebuild returns the conversation summaries for a source file. When
// the cache matches the file's current hash the summaries come straight from
// the cache without reparsing message bodies; otherwise the file is parsed,
// classified, summarized, and the cache rewritten. rebuilt reports which
// path was taken.
//
// A corrupt or stale cache is a miss, never an error. A cache write failure
// is reported to stderr and otherwise ignored: the in-memory summaries are
// complete either way.
func LoadOrRebuild(path string) (summaries []Summary, rebuilt bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", errs.ErrFileOperation, path, err)
	}
	sourceHash := Hash(raw)

	if cached, ok := readCache(CachePath(path), sourceHash); ok {
		return cached, false, nil
	}

	convos, err := parse.Parse(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	summaries = Build(convos)

	if err := writeCache(CachePath(path), sourceHash, summaries); err != nil {
		fmt.Fprintf(os.Stderr, "WARN: write metadata cache: %v\n", err)
	}
	return summaries, true, nil
}

// readCache loads the cache file and validates it against the source hash.
// Any failure (unreadable, bad JSON, wrong schema version, hash mismatch,
// missing summaries) is a miss.
func readCache(path, sourceHash string) ([]Summary, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var cf cacheFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, false
	}
	if cf.SchemaVersion != schemaVersion || cf.SourceHash != sourceHash || cf.Summaries == nil {
		return nil, false
	}
	return cf.Summaries, true
}

func writeCache(path, sourceHash string, summaries []Summary) error {
	data, err := json.Marshal(cacheFile{
		SchemaVersion: schemaVersion,
		SourceHash:    sourceHash,
		Summaries:     summaries,
	})
	if err != nil {
		return err
	}
	return fsutil.AtomicWriteFile(path, data, 0o644)
}
