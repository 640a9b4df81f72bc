package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// PrintSummaryTable prints a formatted summary table to w
func PrintSummaryTable(w io.Writer, summary *Summary) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(w, "Batch Statistics Summary\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Source\tCount\tMean\tMedian\tMode\tStd Dev\tVariance\tInvalid\n")
	fmt.Fprintf(tw, "------\t-----\t----\t------\t----\t-------\t--------\t-------\n")

	for _, e := range summary.Entries {
		if e.Success {
			s := e.Stats()
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%s\t%.4f\t%.4f\t%d\n",
				e.Source,
				s.Count,
				s.Mean,
				s.Median,
				modeCell(e),
				s.StdDev,
				s.Variance,
				e.Report.Invalid,
			)
		} else {
			fmt.Fprintf(tw, "%s\tFAILED\t-\t-\t-\t-\t-\t-\n", e.Source)
		}
	}

	tw.Flush()

	if failed := summary.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed Sources:\n")
		for _, e := range failed {
			fmt.Fprintf(w, "  - %s: %s\n", e.Source, e.Error)
		}
	}

	fmt.Fprintf(w, "\n")
}

func modeCell(e Entry) string {
	if mode, ok := e.Stats().ModeValue(); ok {
		return fmt.Sprintf("%.4f", mode)
	}
	return "-"
}

// PrintMeanGraph prints an ASCII bar chart of the mean of each source,
// scaled by absolute value
func PrintMeanGraph(w io.Writer, summary *Summary) {
	var successful []Entry
	for _, e := range summary.Entries {
		if e.Success {
			successful = append(successful, e)
		}
	}

	if len(successful) == 0 {
		return
	}

	fmt.Fprintf(w, "Mean by Source\n")
	fmt.Fprintf(w, "==============\n\n")

	maxMean := 0.0
	labelWidth := 0
	for _, e := range successful {
		maxMean = math.Max(maxMean, math.Abs(e.Stats().Mean))
		if len(e.Source) > labelWidth {
			labelWidth = len(e.Source)
		}
	}

	graphWidth := 50

	for _, e := range successful {
		barWidth := 1
		if maxMean > 0 {
			barWidth = int((math.Abs(e.Stats().Mean) / maxMean) * float64(graphWidth))
		}
		if barWidth < 1 {
			barWidth = 1
		}

		bar := strings.Repeat("█", barWidth)
		fmt.Fprintf(w, "%-*s │%s %.4f\n", labelWidth, e.Source, bar, e.Stats().Mean)
	}

	fmt.Fprintf(w, "%s └%s\n\n", strings.Repeat(" ", labelWidth), strings.Repeat("─", graphWidth+10))
}

// SaveSummaryJSON saves the batch results as JSON
func SaveSummaryJSON(summary *Summary, filename string) error {
	results := make([]map[string]interface{}, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		entryMap := map[string]interface{}{
			"source":  e.Source,
			"success": e.Success,
			"error":   e.Error,
			"files":   e.Files,
		}

		if e.Success {
			s := e.Stats()
			var mode interface{}
			if v, ok := s.ModeValue(); ok {
				mode = v
			}
			entryMap["invalidEntries"] = e.Report.Invalid
			entryMap["elapsedSeconds"] = e.Report.Elapsed.Seconds()
			entryMap["statistics"] = map[string]interface{}{
				"count":    s.Count,
				"mean":     s.Mean,
				"median":   s.Median,
				"mode":     mode,
				"variance": s.Variance,
				"stdDev":   s.StdDev,
			}
		}

		results = append(results, entryMap)
	}

	formats := make([]string, 0, len(summary.Config.Formats))
	for _, f := range summary.Config.Formats {
		formats = append(formats, string(f))
	}

	output := map[string]interface{}{
		"config": map[string]interface{}{
			"name":      summary.Config.Name,
			"outputDir": summary.Config.OutputDir,
			"sources":   len(summary.Config.Sources),
			"formats":   formats,
		},
		"results": results,
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// SaveSummaryCSV saves the batch results as CSV
func SaveSummaryCSV(summary *Summary, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeSummaryCSV(file, summary)
}

func writeSummaryCSV(w io.Writer, summary *Summary) error {
	writer := csv.NewWriter(w)

	header := []string{
		"Source", "Success", "Count",
		"Mean", "Median", "Mode",
		"Std Dev", "Variance",
		"Invalid Entries", "Elapsed (s)", "Error",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range summary.Entries {
		s := e.Stats()
		mode := ""
		if v, ok := s.ModeValue(); ok {
			mode = fmt.Sprintf("%.4f", v)
		}
		invalid, elapsed := 0, 0.0
		if e.Report != nil {
			invalid = e.Report.Invalid
			elapsed = e.Report.Elapsed.Seconds()
		}

		record := []string{
			e.Source,
			fmt.Sprintf("%t", e.Success),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Median),
			mode,
			fmt.Sprintf("%.4f", s.StdDev),
			fmt.Sprintf("%.4f", s.Variance),
			fmt.Sprintf("%d", invalid),
			fmt.Sprintf("%.6f", elapsed),
			e.Error,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveSummaryMarkdown saves the batch results as Markdown
func SaveSummaryMarkdown(summary *Summary, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var md strings.Builder

	md.WriteString("# Batch Statistics Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format(time.RFC1123)))

	md.WriteString("## Results Summary\n\n")
	md.WriteString("| Source | Count | Mean | Median | Mode | Std Dev | Variance |\n")
	md.WriteString("|--------|-------|------|--------|------|---------|----------|\n")

	for _, e := range summary.Entries {
		if e.Success {
			s := e.Stats()
			md.WriteString(fmt.Sprintf("| `%s` | %d | %.4f | %.4f | %s | %.4f | %.4f |\n",
				e.Source,
				s.Count,
				s.Mean,
				s.Median,
				modeCell(e),
				s.StdDev,
				s.Variance,
			))
		} else {
			md.WriteString(fmt.Sprintf("| `%s` | FAILED | - | - | - | - | - |\n", e.Source))
		}
	}
	md.WriteString("\n")

	if failed := summary.Failed(); len(failed) > 0 {
		md.WriteString("## Failed Sources\n\n")
		for _, e := range failed {
			md.WriteString(fmt.Sprintf("- **%s:** %s\n", e.Source, e.Error))
		}
		md.WriteString("\n")
	}

	_, err = file.WriteString(md.String())
	return err
}
