package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xsalt/chatgpt-conversation-extractor/internal/classify"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/config"
	"github.com/0xsalt/chatgpt-conversation-extractor/internal/meta"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify source file, metadata cache, and output dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			inputFile := cfg.InputFile
			if flagFile != "" {
				inputFile = flagFile
			}
			outputDir := cfg.OutputDir
			if flagOut != "" {
				outputDir = flagOut
			}

			fmt.Println("=== Source ===")
			fmt.Printf("  Path: %s\n", inputFile)
			info, err := os.Stat(inputFile)
			if err != nil {
				fmt.Printf("  Status: NOT FOUND (%v)\n", err)
				return nil
			}
			fmt.Printf("  Size: %d bytes\n", info.Size())

			fmt.Println("\n=== Metadata cache ===")
			cachePath := meta.CachePath(inputFile)
			fmt.Printf("  Path: %s\n", cachePath)
			if _, err := os.Stat(cachePath); os.IsNotExist(err) {
				fmt.Println("  Status: not present (will be built on first run)")
			} else {
				fmt.Println("  Status: present")
			}

			summaries, rebuilt, err := meta.LoadOrRebuild(inputFile)
			if err != nil {
				fmt.Printf("  Load error: %v\n", err)
				return nil
			}
			if rebuilt {
				fmt.Println("  Freshness: rebuilt (source changed or cache stale)")
			} else {
				fmt.Println("  Freshness: up to date")
			}

			counts := map[classify.Category]int{}
			for _, s := range summaries {
				counts[s.Category]++
			}
			fmt.Printf("  Conversations: %d (Project %d, GPT %d, Plain %d)\n",
				len(summaries), counts[classify.Project], counts[classify.GPT], counts[classify.Plain])

			fmt.Println("\n=== Output ===")
			fmt.Printf("  Dir: %s\n", outputDir)
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				fmt.Printf("  Status: NOT WRITABLE (%v)\n", err)
				return nil
			}
			probe, err := os.CreateTemp(outputDir, ".probe-")
			if err != nil {
				fmt.Printf("  Status: NOT WRITABLE (%v)\n", err)
				return nil
			}
			probe.Close()
			os.Remove(probe.Name())
			fmt.Println("  Status: writable")

			return nil
		},
	}
}
