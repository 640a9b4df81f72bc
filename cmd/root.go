package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/attunehq/numstats/report"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	// Flags shared by every command
	containerID string
	envFile     string
	debug       bool

	// Flags for root command (single data file)
	outputDir  string
	outputName string
	formats    []string
)

var rootCmd = &cobra.Command{
	Use:   "numstats <file>",
	Short: "Compute descriptive statistics for a file of numbers",
	Long: `numstats reads one number per line and reports the count, mean, median,
mode, standard deviation and variance of the values. Lines that are not
numbers are skipped with a warning.

Compute statistics for a single file:
  numstats TC1.txt

Read the file from a running container and save JSON and Markdown reports:
  numstats --container my-app /var/log/latency.txt -f json,md

Summarise several files at once:
  numstats batch data/*.txt`,
	Version:           Version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnv,
	RunE:              runStatistics,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// SetVersion sets the version string (called from main)
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&containerID, "container", "", "Read data files from this running Docker container")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before running")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory to save output files")
	rootCmd.Flags().StringVarP(&outputName, "name", "o", report.DefaultName, "Base name of the report files")
	rootCmd.Flags().StringSliceVarP(&formats, "format", "f", []string{string(report.FormatTxt)}, "Report formats: txt, json, csv, md")
}

func runStatistics(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return errors.New("a data file is required")
	}

	reportFormats, err := report.ParseFormats(formats)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sources, closeSources, err := openSources(args)
	if err != nil {
		return err
	}
	defer closeSources()

	rep, err := computeReport(ctx, sources[0])
	if err != nil {
		return err
	}

	report.PrintConsole(os.Stdout, rep)
	saveReport(rep, outputDir, outputName, reportFormats)
	return nil
}
