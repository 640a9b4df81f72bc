package report

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/attunehq/numstats/stats"
)

func sampleReport(values ...float64) *Report {
	return &Report{
		Source:      "data.txt",
		Stats:       stats.Compute(values),
		Invalid:     2,
		Elapsed:     1500 * time.Microsecond,
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatText(t *testing.T) {
	got := FormatText(sampleReport(2, 4, 4, 4, 5, 5, 7, 9))

	rule := strings.Repeat("=", 60)
	want := strings.Join([]string{
		rule,
		"DESCRIPTIVE STATISTICS RESULTS",
		rule,
		"Count of numbers: 8",
		"Mean: 5.0000",
		"Median: 4.5000",
		"Mode: 4.0000",
		"Standard Deviation: 2.1381",
		"Variance: 4.5714",
		rule,
		"Elapsed Time: 0.001500 seconds",
		rule,
	}, "\n")
	if got != want {
		t.Fatalf("unexpected report.\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTextNoMode(t *testing.T) {
	got := FormatText(sampleReport(1, 2, 3))
	if !strings.Contains(got, "\nMode: No mode (all values appear once)\n") {
		t.Fatalf("expected no-mode line, got:\n%s", got)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"txt,json", " CSV ", "markdown", "json"})
	if err != nil {
		t.Fatalf("ParseFormats returned error: %v", err)
	}
	want := []Format{FormatTxt, FormatJSON, FormatCSV, FormatMarkdown}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	if _, err := ParseFormats([]string{"xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := ParseFormats([]string{" , "}); err == nil {
		t.Fatalf("expected error for empty format list")
	}
}

func TestSaveWritesEveryFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := sampleReport(1, 1, 2)

	paths, err := Save(r, dir, "", []Format{FormatTxt, FormatJSON, FormatCSV, FormatMarkdown})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "StatisticsResults.txt"),
		filepath.Join(dir, "StatisticsResults.json"),
		filepath.Join(dir, "StatisticsResults.csv"),
		filepath.Join(dir, "StatisticsResults.md"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("unexpected paths: %v", paths)
	}

	text, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read text report: %v", err)
	}
	if string(text) != FormatText(r) {
		t.Fatalf("text file does not match FormatText")
	}

	md, err := os.ReadFile(paths[3])
	if err != nil {
		t.Fatalf("read markdown report: %v", err)
	}
	if !strings.Contains(string(md), "| Mode | 1.0000 |") {
		t.Fatalf("markdown missing mode row:\n%s", md)
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	if err := SaveJSON(sampleReport(3, 1, 2), path); err != nil {
		t.Fatalf("SaveJSON returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded struct {
		Source     string `json:"source"`
		Statistics struct {
			Count  int      `json:"count"`
			Mean   float64  `json:"mean"`
			Median float64  `json:"median"`
			Mode   *float64 `json:"mode"`
		} `json:"statistics"`
		Summary struct {
			InvalidEntries int `json:"invalidEntries"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Source != "data.txt" || decoded.Statistics.Count != 3 || decoded.Statistics.Mean != 2 || decoded.Statistics.Median != 2 {
		t.Fatalf("unexpected json content: %+v", decoded)
	}
	if decoded.Statistics.Mode != nil {
		t.Fatalf("expected null mode, got %v", *decoded.Statistics.Mode)
	}
	if decoded.Summary.InvalidEntries != 2 {
		t.Fatalf("expected 2 invalid entries, got %d", decoded.Summary.InvalidEntries)
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.csv")
	if err := SaveCSV(sampleReport(5, 3, 1, 3, 5), path); err != nil {
		t.Fatalf("SaveCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	values := make(map[string]string)
	for _, rec := range records[1:] {
		values[rec[0]] = rec[1]
	}
	if values["Mode"] != "5.0000" {
		t.Fatalf("expected mode 5.0000, got %q", values["Mode"])
	}
	if values["Count"] != "5" {
		t.Fatalf("expected count 5, got %q", values["Count"])
	}
}

func TestSaveReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory named like the target file makes os.Create fail.
	if err := os.Mkdir(filepath.Join(dir, "StatisticsResults.json"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := Save(sampleReport(1, 2), dir, "", []Format{FormatJSON, FormatTxt})
	if err == nil {
		t.Fatalf("expected write error")
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "StatisticsResults.txt" {
		t.Fatalf("expected text report to still be written, got %v", paths)
	}
}

func TestPostgresStatements(t *testing.T) {
	if got := insertStatement("results"); !strings.Contains(got, `INSERT INTO "results"`) {
		t.Fatalf("table name not quoted: %s", got)
	}
	if got := schemaStatement(`odd"name`); !strings.Contains(got, `CREATE TABLE IF NOT EXISTS "odd""name"`) {
		t.Fatalf("table name not escaped: %s", got)
	}
	if got := (PostgresSink{}).table(); got != DefaultTable {
		t.Fatalf("expected default table, got %q", got)
	}
}

func TestInsertArgs(t *testing.T) {
	withMode := insertArgs(sampleReport(1, 1, 2))
	if len(withMode) != 10 {
		t.Fatalf("expected 10 args, got %d", len(withMode))
	}
	if mode := withMode[4].(sql.NullFloat64); !mode.Valid || mode.Float64 != 1 {
		t.Fatalf("unexpected mode arg: %#v", mode)
	}

	withoutMode := insertArgs(sampleReport(1, 2))
	if mode := withoutMode[4].(sql.NullFloat64); mode.Valid {
		t.Fatalf("expected NULL mode, got %#v", mode)
	}
}
