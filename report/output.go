package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// SaveJSON saves the report as JSON
func SaveJSON(r *Report, filename string) error {
	var mode interface{}
	if v, ok := r.Stats.ModeValue(); ok {
		mode = v
	}

	output := map[string]interface{}{
		"source":      r.Source,
		"generatedAt": r.GeneratedAt.Format(time.RFC3339),
		"summary": map[string]interface{}{
			"count":          r.Stats.Count,
			"invalidEntries": r.Invalid,
			"elapsedSeconds": r.Elapsed.Seconds(),
		},
		"statistics": map[string]interface{}{
			"count":    r.Stats.Count,
			"mean":     r.Stats.Mean,
			"median":   r.Stats.Median,
			"mode":     mode,
			"variance": r.Stats.Variance,
			"stdDev":   r.Stats.StdDev,
		},
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

// SaveCSV saves the report as a two-column Metric,Value CSV
func SaveCSV(r *Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	mode := ""
	if v, ok := r.Stats.ModeValue(); ok {
		mode = fmt.Sprintf("%.4f", v)
	}

	records := [][]string{
		{"Metric", "Value"},
		{"Source", r.Source},
		{"Count", fmt.Sprintf("%d", r.Stats.Count)},
		{"Mean", fmt.Sprintf("%.4f", r.Stats.Mean)},
		{"Median", fmt.Sprintf("%.4f", r.Stats.Median)},
		{"Mode", mode},
		{"Standard Deviation", fmt.Sprintf("%.4f", r.Stats.StdDev)},
		{"Variance", fmt.Sprintf("%.4f", r.Stats.Variance)},
		{"Invalid Entries", fmt.Sprintf("%d", r.Invalid)},
		{"Elapsed (seconds)", fmt.Sprintf("%.6f", r.Elapsed.Seconds())},
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}

// SaveMarkdown saves the report as Markdown
func SaveMarkdown(r *Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var md strings.Builder

	md.WriteString("# Descriptive Statistics Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.GeneratedAt.Format(time.RFC1123)))

	md.WriteString("## Input\n\n")
	md.WriteString(fmt.Sprintf("- **Source:** `%s`\n", r.Source))
	md.WriteString(fmt.Sprintf("- **Values:** %d\n", r.Stats.Count))
	md.WriteString(fmt.Sprintf("- **Invalid Entries Skipped:** %d\n", r.Invalid))
	md.WriteString(fmt.Sprintf("- **Elapsed Time:** %.6f seconds\n\n", r.Elapsed.Seconds()))

	md.WriteString("## Statistics\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Count | %d |\n", r.Stats.Count))
	md.WriteString(fmt.Sprintf("| Mean | %.4f |\n", r.Stats.Mean))
	md.WriteString(fmt.Sprintf("| Median | %.4f |\n", r.Stats.Median))
	md.WriteString(fmt.Sprintf("| Mode | %s |\n", formatMode(r)))
	md.WriteString(fmt.Sprintf("| Standard Deviation | %.4f |\n", r.Stats.StdDev))
	md.WriteString(fmt.Sprintf("| Variance | %.4f |\n", r.Stats.Variance))

	_, err = file.WriteString(md.String())
	return err
}
