package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doc-scanner/client/internal/config"
	"github.com/doc-scanner/client/internal/export"
	"github.com/doc-scanner/client/internal/staging"
)

func newRunCmd() *cobra.Command {
	var noExport bool

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Stage files and submit them as one batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a := newApp(cfg)
			a.probeScanner(cmd.Context())

			for _, path := range args {
				f, err := staging.FromPath(path)
				if err != nil {
					return err
				}
				if a.staging.Add(f) == 0 {
					fmt.Printf("[Stage] Skipping duplicate name: %s\n", f.Name)
				}
			}

			if err := a.orchestrator.Run(cmd.Context()); err != nil {
				return err
			}

			printSummaries(a)

			if noExport {
				return nil
			}
			return writeExports(a, cfg.Export.Directory)
		},
	}

	cmd.Flags().BoolVar(&noExport, "no-export", false, "skip writing export artifacts")
	return cmd
}

func printSummaries(a *app) {
	summaries := a.renderer.Summaries()
	fmt.Println()
	for i, s := range summaries {
		fmt.Printf("%2d. %-30s [%s]\n", i+1, s.Title, s.Badge)
		fmt.Printf("    %.1f%% confidence, %d words, engine: %s\n",
			s.ConfidencePercent, s.WordCount, s.Engine)
		if s.TextPreview != "" {
			fmt.Printf("    %s\n", s.TextPreview)
		}
	}

	stats := a.renderer.Stats()
	fmt.Printf("\nProcessed %d file(s), average confidence %.1f%%, %d words total\n",
		stats.Count, stats.AverageConfidence, stats.TotalWords)
}

func writeExports(a *app, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	resultSeq := a.results.List()

	jsonData, err := export.JSONBytes(resultSeq)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(dir, export.JSONFileName)
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return err
	}

	csvData, err := export.CSVBytes(resultSeq)
	if err != nil {
		return err
	}
	csvPath := filepath.Join(dir, export.CSVFileName)
	if err := os.WriteFile(csvPath, csvData, 0644); err != nil {
		return err
	}

	fmt.Printf("[Export] Wrote %s and %s\n", jsonPath, csvPath)
	return nil
}
