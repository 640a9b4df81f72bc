// Package report renders statistics results as text, JSON, CSV and Markdown
// and stores them on disk or in Postgres.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/attunehq/numstats/stats"
)

// DefaultName is the base name of the report files
const DefaultName = "StatisticsResults"

// Format is an output file format
type Format string

const (
	FormatTxt      Format = "txt"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// Report is one statistics run over a single source
type Report struct {
	Source      string
	Stats       stats.Result
	Invalid     int           // Number of skipped entries
	Elapsed     time.Duration // Time spent loading and computing
	GeneratedAt time.Time
}

// New creates a report stamped with the current time
func New(source string, result stats.Result, invalid int, elapsed time.Duration) *Report {
	return &Report{
		Source:      source,
		Stats:       result,
		Invalid:     invalid,
		Elapsed:     elapsed,
		GeneratedAt: time.Now(),
	}
}

// ParseFormats parses values such as "txt", "json,csv" into formats.
// Duplicates are dropped.
func ParseFormats(values []string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			f := Format(strings.ToLower(strings.TrimSpace(part)))
			if f == "" {
				continue
			}
			switch f {
			case FormatTxt, FormatJSON, FormatCSV, FormatMarkdown:
			case "markdown":
				f = FormatMarkdown
			case "text":
				f = FormatTxt
			default:
				return nil, fmt.Errorf("unknown format '%s': expected txt, json, csv or md", part)
			}
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one output format is required")
	}
	return formats, nil
}

// SaveFile writes the report in a single format
func SaveFile(r *Report, format Format, filename string) error {
	switch format {
	case FormatTxt:
		return SaveText(r, filename)
	case FormatJSON:
		return SaveJSON(r, filename)
	case FormatCSV:
		return SaveCSV(r, filename)
	case FormatMarkdown:
		return SaveMarkdown(r, filename)
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}
}

// Save writes the report as dir/name.<ext> for every format. It keeps going
// after a failure and returns the paths written along with the first error.
func Save(r *Report, dir, name string, formats []Format) ([]string, error) {
	if name == "" {
		name = DefaultName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	var (
		written  []string
		firstErr error
	)
	for _, format := range formats {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", name, format))
		if err := SaveFile(r, format, path); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("error writing to file '%s': %w", path, err)
			}
			continue
		}
		written = append(written, path)
	}
	return written, firstErr
}
