package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/config"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/errs"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/session"
)

var version = "dev"

var (
	flagFile string
	flagOut  string
)

func main() {
	// A keyboard interrupt anywhere is a deliberate exit, not an error.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Println("\nGoodbye.")
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:     "cgx",
		Short:   "Extract, browse, and archive conversations from a ChatGPT data export",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			return runMenu(sess)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "Path to conversations.json (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "Output directory (default from config)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errs.ErrUserExit) {
			fmt.Println("Goodbye.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", errorLabel(err), err)
		os.Exit(exitCode(err))
	}
}

// openSession builds a session from config plus flag overrides.
func openSession() (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	inputFile := cfg.InputFile
	if flagFile != "" {
		inputFile = flagFile
	}
	outputDir := cfg.OutputDir
	if flagOut != "" {
		outputDir = flagOut
	}
	return session.Open(inputFile, outputDir)
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return "Input Error"
	case errors.Is(err, errs.ErrInvalidJSON):
		return "File Error"
	case errors.Is(err, errs.ErrFileOperation):
		return "File Error"
	case errors.Is(err, errs.ErrProcessing):
		return "Processing Error"
	case errors.Is(err, errs.ErrExport):
		return "Export Error"
	default:
		return "Unexpected Error"
	}
}

// exitCode maps error kinds to distinct exit codes: 2 for file operations
// (including file-not-found), 3 for an unparseable export, 1 otherwise.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidJSON):
		return 3
	case errors.Is(err, errs.ErrFileOperation):
		return 2
	default:
		return 1
	}
}
