// Package batch computes statistics for several sources in one run and
// summarises them side by side.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/attunehq/numstats/ingest"
	"github.com/attunehq/numstats/report"
	"github.com/attunehq/numstats/stats"
)

// Output is where progress is printed. Tests replace it.
var Output io.Writer = os.Stdout

// Warnings receives skipped-entry warnings from the sources
var Warnings io.Writer = os.Stderr

func debugLog(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	fmt.Fprintf(Output, "[DEBUG] "+format+"\n", args...)
}

// Run processes every source sequentially. A failing source is recorded
// and does not stop the batch; a cancelled context stops it before the
// next source.
func Run(ctx context.Context, config Config) (*Summary, error) {
	summary := &Summary{
		Config:  config,
		Entries: make([]Entry, 0, len(config.Sources)),
	}

	if len(config.Formats) > 0 {
		debugLog(config.Debug, "Creating output directory: %s", config.OutputDir)
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	fmt.Fprintf(Output, "\nBatch Statistics\n")
	fmt.Fprintf(Output, "================\n")
	fmt.Fprintf(Output, "Sources: %d\n", len(config.Sources))
	if config.Debug {
		fmt.Fprintf(Output, "Debug:   enabled\n")
	}
	fmt.Fprintf(Output, "\n")

	stems := make(map[string]int)
	for i, src := range config.Sources {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch interrupted after %d/%d sources: %w", i, len(config.Sources), err)
		}

		fmt.Fprintf(Output, "Source %d/%d: %s\n", i+1, len(config.Sources), src.Name())

		entry := runSingleSource(ctx, config, src)
		if entry.Success && len(config.Formats) > 0 {
			stem := uniqueStem(stems, FileStem(src.Name()))
			debugLog(config.Debug, "Saving reports for %s as %s", src.Name(), stem)
			files, err := report.Save(entry.Report, config.OutputDir, stem, config.Formats)
			if err != nil {
				fmt.Fprintf(Output, "  Warning: %v\n", err)
			}
			entry.Files = files
		}
		summary.Entries = append(summary.Entries, entry)

		if entry.Success {
			fmt.Fprintf(Output, "  ✓ %d values, mean %.4f\n\n", entry.Report.Stats.Count, entry.Report.Stats.Mean)
		} else {
			fmt.Fprintf(Output, "  ✗ Failed: %s\n\n", entry.Error)
		}
	}

	return summary, nil
}

// runSingleSource loads one source and computes its statistics
func runSingleSource(ctx context.Context, config Config, src ingest.Source) Entry {
	entry := Entry{Source: src.Name()}

	start := time.Now()
	debugLog(config.Debug, "Loading %s", src.Name())
	data, err := src.Load(ctx, ingest.Options{Warnings: Warnings})
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	if err := data.Validate(); err != nil {
		entry.Error = err.Error()
		return entry
	}

	result := stats.Compute(data.Values)
	elapsed := time.Since(start)
	debugLog(config.Debug, "Computed statistics for %d values in %s", result.Count, elapsed)

	entry.Report = report.New(src.Name(), result, len(data.Invalid), elapsed)
	entry.Success = true
	return entry
}

// uniqueStem appends a counter to stems that were already used
func uniqueStem(used map[string]int, stem string) string {
	used[stem]++
	if n := used[stem]; n > 1 {
		return fmt.Sprintf("%s_%d", stem, n)
	}
	return stem
}
