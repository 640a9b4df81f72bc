package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attunehq/numstats/batch"
	"github.com/attunehq/numstats/ingest"
	"github.com/attunehq/numstats/report"
	"github.com/attunehq/numstats/stats"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func debugLog(format string, args ...interface{}) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
}

// loadEnv loads the environment file. A missing default .env is not an
// error; a missing file passed with --env-file is.
func loadEnv(cmd *cobra.Command, args []string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
			debugLog("No %s file, using process environment", envFile)
			return nil
		}
		return fmt.Errorf("error loading environment file '%s': %w", envFile, err)
	}
	debugLog("Loaded environment from %s", envFile)
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nReceived interrupt signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// openSources turns file arguments into sources, connecting to Docker when
// --container is set. The returned function releases the Docker client.
func openSources(args []string) ([]ingest.Source, func(), error) {
	var dockerClient *ingest.DockerClient
	closeFn := func() {}

	if containerID != "" {
		debugLog("Connecting to Docker for container %s", containerID)
		c, err := ingest.NewDockerClient()
		if err != nil {
			return nil, closeFn, err
		}
		dockerClient = c
		closeFn = func() { c.Close() }
	}

	sources, err := batch.ParseSources(args, dockerClient, containerID)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return sources, closeFn, nil
}

// computeReport loads a source and runs the statistics engine over it. The
// elapsed time covers both loading and computing.
func computeReport(ctx context.Context, src ingest.Source) (*report.Report, error) {
	fmt.Printf("Reading data from '%s'...\n\n", src.Name())

	start := time.Now()
	data, err := src.Load(ctx, ingest.Options{Warnings: os.Stderr})
	if err != nil {
		return nil, describeLoadError(src, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("no valid data found in '%s'", src.Name())
	}

	fmt.Printf("Successfully loaded %d numbers.\n", len(data.Values))
	fmt.Printf("Calculating statistics...\n\n")

	result := stats.Compute(data.Values)
	elapsed := time.Since(start)
	debugLog("Computed statistics for %d values in %s", result.Count, elapsed)

	return report.New(src.Name(), result, len(data.Invalid), elapsed), nil
}

func describeLoadError(src ingest.Source, err error) error {
	switch {
	case errors.Is(err, ingest.ErrNotFound):
		return fmt.Errorf("file '%s' not found", src.Name())
	case errors.Is(err, ingest.ErrPermission):
		return fmt.Errorf("permission denied to read '%s'", src.Name())
	default:
		return err
	}
}

// saveReport writes the report files. Failures are warnings.
func saveReport(rep *report.Report, dir, name string, formats []report.Format) {
	paths, err := report.Save(rep, dir, name, formats)
	for _, path := range paths {
		fmt.Printf("\nResults saved to '%s'\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
