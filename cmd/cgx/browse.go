package main

import (
	"github.com/spf13/cobra"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [keyword]",
		Short: "Browse conversations in an interactive list with live preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return tui.Run(sess, query)
		},
	}
}
