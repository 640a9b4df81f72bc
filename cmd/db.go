package cmd

import (
	"fmt"
	"os"

	"github.com/attunehq/numstats/ingest"
	"github.com/attunehq/numstats/report"
	"github.com/spf13/cobra"
)

var (
	// Flags for db command
	dbQuery     string
	dbStore     bool
	dbTable     string
	dbOutputDir string
	dbName      string
	dbFormats   []string
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Compute statistics for numbers read from Postgres",
	Long: `Run a query against Postgres and compute statistics over the first column
of its rows. NULL values are skipped.

The connection is configured from POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER,
POSTGRES_PASSWORD and POSTGRES_DB, or DATABASE_URL. These can be set in the
environment file (--env-file, default .env).`,
	Example: `  numstats db --query "SELECT value FROM samples ORDER BY id"

  numstats db --query "SELECT latency FROM requests WHERE day = current_date" --store`,
	Args: cobra.NoArgs,
	RunE: runDB,
}

func init() {
	dbCmd.Flags().StringVarP(&dbQuery, "query", "q", "", "SQL query returning one numeric column (required)")
	dbCmd.Flags().BoolVar(&dbStore, "store", false, "Store the result in Postgres")
	dbCmd.Flags().StringVar(&dbTable, "table", report.DefaultTable, "Table for --store")
	dbCmd.Flags().StringVar(&dbOutputDir, "output-dir", ".", "Directory to save output files")
	dbCmd.Flags().StringVarP(&dbName, "name", "o", report.DefaultName, "Base name of the report files")
	dbCmd.Flags().StringSliceVarP(&dbFormats, "format", "f", []string{string(report.FormatTxt)}, "Report formats: txt, json, csv, md")

	dbCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(dbCmd)
}

func runDB(cmd *cobra.Command, args []string) error {
	reportFormats, err := report.ParseFormats(dbFormats)
	if err != nil {
		return err
	}

	dsn, err := ingest.BuildDSNFromEnv()
	if err != nil {
		return fmt.Errorf("database config error: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	debugLog("Connecting to Postgres")
	db, err := ingest.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	rep, err := computeReport(ctx, ingest.PostgresSource{DB: db, Query: dbQuery})
	if err != nil {
		return err
	}

	report.PrintConsole(os.Stdout, rep)
	saveReport(rep, dbOutputDir, dbName, reportFormats)

	if dbStore {
		sink := report.PostgresSink{DB: db, Table: dbTable}
		if err := sink.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := sink.Store(ctx, rep); err != nil {
			return err
		}
		fmt.Printf("Result stored in table %s\n", dbTable)
	}
	return nil
}
