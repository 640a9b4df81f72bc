package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/attunehq/numstats/batch"
	"github.com/attunehq/numstats/report"
	"github.com/spf13/cobra"
)

var (
	// Flags for batch command
	batchOutputDir string
	batchName      string
	batchFormats   []string
	batchNoReports bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Compute statistics for several files and summarise them",
	Long: `Compute descriptive statistics for every file given and print a summary
table comparing them. A file that cannot be read is reported as failed and
the remaining files are still processed.

A report is written for each file, and a summary is saved as JSON, CSV and
Markdown.`,
	Example: `  numstats batch data/TC1.txt data/TC2.txt data/TC3.txt

  numstats batch --container my-app /data/a.txt /data/b.txt --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./batch-results", "Directory to save output files")
	batchCmd.Flags().StringVar(&batchName, "name", "", "Batch name for the summary files (default: timestamp)")
	batchCmd.Flags().StringSliceVarP(&batchFormats, "format", "f", []string{string(report.FormatTxt)}, "Per-file report formats: txt, json, csv, md")
	batchCmd.Flags().BoolVar(&batchNoReports, "no-reports", false, "Only write the summary, skip per-file reports")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	var reportFormats []report.Format
	if !batchNoReports {
		var err error
		reportFormats, err = report.ParseFormats(batchFormats)
		if err != nil {
			return err
		}
	}

	sources, closeSources, err := openSources(args)
	if err != nil {
		return err
	}
	defer closeSources()

	name := batchName
	if name == "" {
		name = fmt.Sprintf("batch_%s", time.Now().Format("20060102_150405"))
	}

	config := batch.Config{
		Sources:   sources,
		OutputDir: batchOutputDir,
		Name:      name,
		Formats:   reportFormats,
		Debug:     debug,
	}

	ctx, cancel := signalContext()
	defer cancel()

	summary, runErr := batch.Run(ctx, config)
	return finishBatch(summary, runErr, config.OutputDir, name)
}

// finishBatch reports whatever the run produced. An interrupted run still
// prints and saves the sources it completed before returning its error.
func finishBatch(summary *batch.Summary, runErr error, outputDir, name string) error {
	if summary == nil {
		return fmt.Errorf("error running batch: %w", runErr)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "\nWarning: %v\nPartial results:\n", runErr)
	}

	if err := writeSummary(summary, outputDir, name); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("error running batch: %w", runErr)
	}
	if failed := summary.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(summary.Entries))
	}
	return nil
}

// writeSummary prints the summary table and saves it in every summary format.
// Save failures are warnings.
func writeSummary(summary *batch.Summary, outputDir, name string) error {
	batch.PrintSummaryTable(os.Stdout, summary)
	batch.PrintMeanGraph(os.Stdout, summary)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("%s_summary.json", name))
	if err := batch.SaveSummaryJSON(summary, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to save JSON output: %v\n", err)
	} else {
		fmt.Printf("JSON summary saved to: %s\n", jsonPath)
	}

	csvPath := filepath.Join(outputDir, fmt.Sprintf("%s_summary.csv", name))
	if err := batch.SaveSummaryCSV(summary, csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to save CSV output: %v\n", err)
	} else {
		fmt.Printf("CSV summary saved to: %s\n", csvPath)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("%s_summary.md", name))
	if err := batch.SaveSummaryMarkdown(summary, mdPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to save Markdown output: %v\n", err)
	} else {
		fmt.Printf("Markdown report saved to: %s\n", mdPath)
	}
	return nil
}
