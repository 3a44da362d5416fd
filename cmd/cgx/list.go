package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/search"
)

func listCmd() *cobra.Command {
	var category, order string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations from the export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}

			summaries := sess.Summaries
			if category != "" {
				cat, err := parseCategory(category)
				if err != nil {
					return err
				}
				summaries = search.ByCategory(summaries, cat)
			}
			switch order {
			case "asc":
				summaries = search.SortByTime(summaries, true)
			case "desc":
				summaries = search.SortByTime(summaries, false)
			default:
				return fmt.Errorf("%w: order must be asc or desc", errs.ErrValidation)
			}
			if limit > 0 && len(summaries) > limit {
				summaries = summaries[:limit]
			}

			for i, s := range summaries {
				fmt.Printf("%d: %s\n", i, s.Label())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (project/gpt/plain)")
	cmd.Flags().StringVar(&order, "order", "desc", "Sort order (asc/desc)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}

func parseCategory(s string) (classify.Category, error) {
	switch s {
	case "project", "Project":
		return classify.Project, nil
	case "gpt", "GPT":
		return classify.GPT, nil
	case "plain", "Plain":
		return classify.Plain, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", errs.ErrValidation, s)
	}
}
