package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/search"
)

func exportCmd() *cobra.Command {
	var category, zipName string
	var all bool

	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export conversations to markdown files or a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}

			var selected []meta.Summary
			switch {
			case all:
				selected = search.SortByTime(sess.Summaries, true)
			case category != "":
				cat, err := parseCategory(category)
				if err != nil {
					return err
				}
				selected = search.ByCategory(sess.Summaries, cat)
			case len(args) > 0:
				for _, id := range args {
					s, ok := sess.FindByID(id)
					if !ok {
						return fmt.Errorf("%w: no conversation with id %q", errs.ErrValidation, id)
					}
					selected = append(selected, s)
				}
			default:
				return fmt.Errorf("%w: give conversation ids, --category, or --all", errs.ErrValidation)
			}

			if len(selected) == 0 {
				return fmt.Errorf("%w: nothing to export", errs.ErrExport)
			}

			// One id and no zip requested: a single markdown file.
			if zipName == "" && len(selected) == 1 {
				path, err := sess.ExportOne(selected[0])
				if err != nil {
					return err
				}
				fmt.Printf("Saved: %s\n", path)
				return nil
			}

			base := zipName
			if base == "" {
				base = meta.FormatTimestamp(float64(time.Now().Unix())) + "-export"
			}
			zipPath, n, err := sess.ExportZip(selected, base)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d conversations to %s\n", n, zipPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Export every conversation in a category (project/gpt/plain)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every conversation")
	cmd.Flags().StringVar(&zipName, "zip", "", "Bundle into <name>.zip instead of individual files")

	return cmd
}
