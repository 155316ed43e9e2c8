package main

import (
	"fmt"
	"os"
	"time"

	"medguide/internal/config"
	applog "medguide/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	seedFile  string
	seedForce bool

	exportOut string

	checkServer  string
	checkAge     int
	checkGender  string
	checkTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "medguide",
	Short:         "Medicine guide: reference catalog and symptom checker API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		l, err := applog.NewLogger(c.Log.Level, c.Log.Format, "medguide")
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import medicines and diseases from a YAML or XLSX file (default: built-in sample)",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the medicine catalog to an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var checkCmd = &cobra.Command{
	Use:   "check [symptoms...]",
	Short: "Run a symptom check against a running server",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog file (.yaml, .yml or .xlsx)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "insert even when medicines already exist")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "medicines.xlsx", "output file")

	checkCmd.Flags().StringVar(&checkServer, "server", "http://localhost:5000", "medguide server base URL")
	checkCmd.Flags().IntVar(&checkAge, "age", 0, "patient age (server default when 0)")
	checkCmd.Flags().StringVar(&checkGender, "gender", "", "patient gender")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
