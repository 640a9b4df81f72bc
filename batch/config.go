package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/attunehq/numstats/ingest"
	"github.com/attunehq/numstats/report"
	"github.com/attunehq/numstats/stats"
)

// Config holds the batch configuration
type Config struct {
	Sources   []ingest.Source // Sources processed in order
	OutputDir string          // Directory to save output files
	Name      string          // Batch name for the summary files
	Formats   []report.Format // Per-source report formats, none to skip them
	Debug     bool            // Print debug tracing
}

// Entry holds the result for a single source
type Entry struct {
	Source  string
	Success bool
	Error   string
	Report  *report.Report
	Files   []string // Per-source report files written
}

// Stats returns the statistics of a successful entry
func (e Entry) Stats() stats.Result {
	if e.Report == nil {
		return stats.Result{}
	}
	return e.Report.Stats
}

// Summary holds the complete batch results
type Summary struct {
	Config  Config
	Entries []Entry
}

// Failed returns the entries that could not be processed
func (s *Summary) Failed() []Entry {
	var failed []Entry
	for _, e := range s.Entries {
		if !e.Success {
			failed = append(failed, e)
		}
	}
	return failed
}

// ParseSources maps command-line arguments to sources. With a container ID,
// every argument is a path inside that container.
func ParseSources(args []string, dockerClient *ingest.DockerClient, containerID string) ([]ingest.Source, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one data file is required")
	}

	sources := make([]ingest.Source, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return nil, fmt.Errorf("empty data file argument")
		}
		if containerID != "" {
			sources = append(sources, ingest.ContainerSource{
				Client:      dockerClient,
				ContainerID: containerID,
				Path:        arg,
			})
			continue
		}
		sources = append(sources, ingest.FileSource{Path: arg})
	}
	return sources, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileStem returns a file-name-safe name for a source
func FileStem(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" || base == "." {
		return "source"
	}
	return base
}
