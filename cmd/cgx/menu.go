package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/export"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/search"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/session"
)

// menu drives the interactive session: category select, listing, fuzzy
// search, range selection, and export. Validation problems re-prompt; only a
// deliberate quit or an unrecoverable file error leaves the loop.
type menu struct {
	sess *session.Session
	in   *bufio.Reader
	out  io.Writer
}

func runMenu(sess *session.Session) error {
	m := &menu{sess: sess, in: bufio.NewReader(os.Stdin), out: os.Stdout}
	return m.run()
}

func (m *menu) run() error {
	for {
		fmt.Fprintln(m.out, "\nSelect category to browse:")
		fmt.Fprintln(m.out, "0: Project")
		fmt.Fprintln(m.out, "1: GPT")
		fmt.Fprintln(m.out, "2: Plain")
		fmt.Fprintln(m.out, "3: List all chats sequentially ASC")
		fmt.Fprintln(m.out, "4: List all chats sequentially DESC")
		fmt.Fprintln(m.out, "5: Fuzzy search by keyword")
		fmt.Fprintln(m.out, "q: Quit")

		choice, err := m.readLine("\nEnter choice: ")
		if err != nil {
			return err
		}

		var actErr error
		switch choice {
		case "0":
			actErr = m.browse(search.ByCategory(m.sess.Summaries, classify.Project))
		case "1":
			actErr = m.browse(search.ByCategory(m.sess.Summaries, classify.GPT))
		case "2":
			actErr = m.browse(search.ByCategory(m.sess.Summaries, classify.Plain))
		case "3":
			actErr = m.browse(search.SortByTime(m.sess.Summaries, true))
		case "4":
			actErr = m.browse(search.SortByTime(m.sess.Summaries, false))
		case "5":
			actErr = m.fuzzySearch()
		case "q", "quit", "exit":
			return errs.ErrUserExit
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter one of: 0, 1, 2, 3, 4, 5, q")
			continue
		}

		if actErr == nil {
			continue
		}
		switch {
		case errors.Is(actErr, errs.ErrValidation):
			fmt.Fprintf(m.out, "Input Error: %v\nPlease try again.\n", actErr)
		case errors.Is(actErr, errs.ErrExport), errors.Is(actErr, errs.ErrProcessing):
			fmt.Fprintf(m.out, "%s: %v\n", errorLabel(actErr), actErr)
		default:
			// user exit or an unrecoverable file error
			return actErr
		}
	}
}

// browse shows a filtered listing with optional range/paging selection.
func (m *menu) browse(filtered []meta.Summary) error {
	if len(filtered) == 0 {
		fmt.Fprintln(m.out, "No conversations in this selection.")
		return nil
	}
	fmt.Fprintf(m.out, "Hint: there are %d conversations available\n", len(filtered))

	line, err := m.readLine("How many at a time or what range? [e.g. 10, or 50-100, or ENTER for all]: ")
	if err != nil {
		return err
	}
	spec, err := parseRange(line, len(filtered))
	if err != nil {
		return err
	}

	switch {
	case spec.page > 0:
		return m.paged(filtered, spec.page)
	case spec.all:
		return m.selectOrZip(filtered, "range_export")
	default:
		return m.selectOrZip(filtered[spec.start:spec.end+1], "range_export")
	}
}

// paged shows the listing step entries at a time; ENTER advances, a number
// exports that conversation.
func (m *menu) paged(filtered []meta.Summary, step int) error {
	for start := 0; start < len(filtered); start += step {
		end := start + step
		if end > len(filtered) {
			end = len(filtered)
		}
		fmt.Fprintf(m.out, "\n--- Chats %d to %d ---\n", start, end-1)
		for i := start; i < end; i++ {
			fmt.Fprintf(m.out, "%d: %s\n", i, filtered[i].Label())
		}

		line, err := m.readLine("\nSelect chat # to extract or press ENTER to continue: ")
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		idx, err := parseIndex(line, len(filtered))
		if err != nil {
			return err
		}
		return m.exportSingle(filtered[idx])
	}
	fmt.Fprintln(m.out, "No conversation selected.")
	return nil
}

// fuzzySearch prompts for a keyword, lists title matches, then exports one
// or bundles all of them.
func (m *menu) fuzzySearch() error {
	ordered := search.SortByTime(m.sess.Summaries, true)

	var matched []meta.Summary
	var keyword string
	for {
		line, err := m.readLine("Enter keyword to search for (case-insensitive, title match): ")
		if err != nil {
			return err
		}
		matched, err = search.Filter(ordered, line)
		if err != nil {
			fmt.Fprintf(m.out, "Input Error: %v\nPlease try again.\n", err)
			continue
		}
		keyword = line
		break
	}

	fmt.Fprintf(m.out, "\n--- Matches (%d results) ---\n", len(matched))
	if len(matched) == 0 {
		return nil
	}
	return m.selectOrZip(matched, "fuzzy_matches_"+export.SanitizeTitle(keyword))
}

// selectOrZip lists the summaries and prompts for a single export or a zip
// of everything shown.
func (m *menu) selectOrZip(shown []meta.Summary, zipSuffix string) error {
	fmt.Fprintln(m.out, "\n--- Available Chats ---")
	for i, s := range shown {
		fmt.Fprintf(m.out, "%d: %s\n", i, s.Label())
	}

	line, err := m.readLine("\nSelect the conversation number to extract, or type 'zip' to export all to a zip: ")
	if err != nil {
		return err
	}
	if line == "zip" {
		base := meta.FormatTimestamp(float64(time.Now().Unix())) + "-" + zipSuffix
		zipPath, n, err := m.sess.ExportZip(shown, base)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Exported %d conversations to %s\n", n, zipPath)
		return errs.ErrUserExit
	}

	idx, err := parseIndex(line, len(shown))
	if err != nil {
		return err
	}
	return m.exportSingle(shown[idx])
}

func (m *menu) exportSingle(s meta.Summary) error {
	path, err := m.sess.ExportOne(s)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Saved: %s\n", path)
	return errs.ErrUserExit
}

// readLine prompts and reads one trimmed line. EOF counts as a quit.
func (m *menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errs.ErrUserExit
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// rangeSpec is a parsed display-range choice: everything, a page size, or a
// start-end span.
type rangeSpec struct {
	all        bool
	page       int
	start, end int
}

func parseRange(input string, total int) (rangeSpec, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return rangeSpec{all: true}, nil
	}

	if strings.Contains(input, "-") {
		parts := strings.SplitN(input, "-", 2)
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return rangeSpec{}, fmt.Errorf("%w: range values must be numbers", errs.ErrValidation)
		}
		if start < 0 || end < 0 {
			return rangeSpec{}, fmt.Errorf("%w: range values must not be negative", errs.ErrValidation)
		}
		if start > end {
			return rangeSpec{}, fmt.Errorf("%w: range start must not exceed end", errs.ErrValidation)
		}
		if end >= total {
			return rangeSpec{}, fmt.Errorf("%w: range end must be less than %d", errs.ErrValidation, total)
		}
		return rangeSpec{start: start, end: end}, nil
	}

	page, err := strconv.Atoi(input)
	if err != nil {
		return rangeSpec{}, fmt.Errorf("%w: please enter a number or a range like 50-100", errs.ErrValidation)
	}
	if page < 1 {
		return rangeSpec{}, fmt.Errorf("%w: page size must be at least 1", errs.ErrValidation)
	}
	return rangeSpec{page: page}, nil
}

func parseIndex(input string, total int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: please enter a number or 'zip'", errs.ErrValidation)
	}
	if idx < 0 || idx >= total {
		return 0, fmt.Errorf("%w: selection must be between 0 and %d", errs.ErrValidation, total-1)
	}
	return idx, nil
}
