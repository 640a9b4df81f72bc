package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var rule = strings.Repeat("=", 60)

// noModeText is printed when no value occurs more than once
const noModeText = "No mode (all values appear once)"

// FormatText renders the plain text report
func FormatText(r *Report) string {
	lines := []string{
		rule,
		"DESCRIPTIVE STATISTICS RESULTS",
		rule,
		fmt.Sprintf("Count of numbers: %d", r.Stats.Count),
		fmt.Sprintf("Mean: %.4f", r.Stats.Mean),
		fmt.Sprintf("Median: %.4f", r.Stats.Median),
		fmt.Sprintf("Mode: %s", formatMode(r)),
		fmt.Sprintf("Standard Deviation: %.4f", r.Stats.StdDev),
		fmt.Sprintf("Variance: %.4f", r.Stats.Variance),
		rule,
		fmt.Sprintf("Elapsed Time: %.6f seconds", r.Elapsed.Seconds()),
		rule,
	}
	return strings.Join(lines, "\n")
}

func formatMode(r *Report) string {
	mode, ok := r.Stats.ModeValue()
	if !ok {
		return noModeText
	}
	return fmt.Sprintf("%.4f", mode)
}

// PrintConsole writes the text report to w
func PrintConsole(w io.Writer, r *Report) {
	fmt.Fprintln(w, FormatText(r))
}

// SaveText saves the text report
func SaveText(r *Report, filename string) error {
	return os.WriteFile(filename, []byte(FormatText(r)), 0644)
}
