// Package ingest loads samples of numbers for the statistics engine.
//
// Every source yields only finite values. Entries that cannot be used are
// skipped, reported as warnings and counted in Data.Invalid.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when the requested file or container does not exist
	ErrNotFound = errors.New("not found")
	// ErrPermission is returned when the source cannot be read due to permissions
	ErrPermission = errors.New("permission denied")
	// ErrNoData is returned by Data.Validate when no valid value was loaded
	ErrNoData = errors.New("no valid data")
)

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

// Invalid describes an entry that was skipped
type Invalid struct {
	Line int    // 1-based line or row number
	Text string // Raw text of the entry
}

// Data is a loaded sample together with the entries that were skipped
type Data struct {
	Source  string
	Values  []float64
	Invalid []Invalid
}

// Validate returns ErrNoData if the sample is empty
func (d *Data) Validate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("%w in %s", ErrNoData, d.Source)
	}
	return nil
}

// Options controls how a source reports skipped entries
type Options struct {
	// Warnings receives one line per skipped entry and a final total.
	// Nil discards warnings.
	Warnings io.Writer
}

func (o Options) warnf(format string, args ...interface{}) {
	if o.Warnings == nil {
		return
	}
	fmt.Fprintf(o.Warnings, format, args...)
}

// Source is anything that can produce a sample
type Source interface {
	// Name identifies the source in reports
	Name() string
	// Load reads the whole sample
	Load(ctx context.Context, opts Options) (*Data, error)
}

// Parse reads one number per line from r. Blank lines are ignored; lines
// that are not finite numbers are skipped and recorded in Data.Invalid.
func Parse(r io.Reader, source string, opts Options) (*Data, error) {
	data := &Data{Source: source}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, ok := parseValue(line)
		if !ok {
			inv := Invalid{Line: lineNum, Text: line}
			data.Invalid = append(data.Invalid, inv)
			opts.warnf("Warning: Invalid data at line %d: '%s' - Skipping\n", inv.Line, inv.Text)
			continue
		}
		data.Values = append(data.Values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}

	if len(data.Invalid) > 0 {
		opts.warnf("\nTotal invalid entries skipped: %d\n\n", len(data.Invalid))
	}
	return data, nil
}

// parseValue parses a finite float64
func parseValue(s string) (float64, bool) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
