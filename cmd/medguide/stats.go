package main

import (
	"fmt"

	"medguide/internal/database"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts of the catalog and log tables",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	db, repos, dialect, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close(db)

	medicines, err := repos.Medicines.CountMedicines(ctx)
	if err != nil {
		return fmt.Errorf("failed to count medicines: %w", err)
	}
	diseases, err := repos.Diseases.CountDiseases(ctx)
	if err != nil {
		return fmt.Errorf("failed to count diseases: %w", err)
	}
	checks, err := repos.SymptomChecks.CountSymptomChecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count symptom checks: %w", err)
	}
	consultations, err := repos.Consultations.CountConsultations(ctx)
	if err != nil {
		return fmt.Errorf("failed to count consultations: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", dialect)
	fmt.Fprintf(out, "%-24s %d\n", "medicines", medicines)
	fmt.Fprintf(out, "%-24s %d\n", "diseases", diseases)
	fmt.Fprintf(out, "%-24s %d\n", "symptom_checks", checks)
	fmt.Fprintf(out, "%-24s %d\n", "medical_consultations", consultations)
	return nil
}
