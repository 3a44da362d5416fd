package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/search"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/tui"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search conversation titles (case-insensitive substring)",
		Long: `Search conversation titles. On a terminal this opens the interactive
browser pre-filtered to the keyword; when piped, matches are printed as TSV:
  id, category, timestamp, title`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}

			// Interactive TUI when stdout is a terminal; TSV for pipes.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(sess, args[0])
			}

			matched, err := search.Filter(search.SortByTime(sess.Summaries, false), args[0])
			if err != nil {
				return err
			}
			if len(matched) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}
			for _, s := range matched {
				title := strings.ReplaceAll(s.Title, "\t", " ")
				fmt.Printf("%s\t%s\t%s\t%s\n", s.ID, s.Category, s.Timestamp, title)
			}
			return nil
		},
	}
}
