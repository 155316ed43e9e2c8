package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"medguide/internal/catalog"
	"medguide/internal/client"
	"medguide/internal/database"
	"medguide/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	db, _, dialect, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(cmdContext(cmd), db, dialect); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", dialect)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	var (
		c   *catalog.Catalog
		err error
	)
	if seedFile == "" {
		c, err = catalog.Sample()
	} else {
		c, err = catalog.LoadFile(seedFile)
	}
	if err != nil {
		return err
	}

	db, repos, dialect, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}

	res, err := catalog.Seed(ctx, repos, c, seedForce)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if res.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "medicines table is not empty, nothing seeded (use --force)")
		return nil
	}

	if kv := openCache(ctx); kv != nil {
		if err := service.InvalidateCatalogCache(ctx, kv); err != nil {
			logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
		_ = kv.Close()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d medicines, %d diseases\n", res.Medicines, res.Diseases)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	db, repos, _, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close(db)

	meds, err := repos.Medicines.ListMedicines(ctx)
	if err != nil {
		return err
	}
	data, err := catalog.ExportMedicinesXLSX(meds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d medicines to %s\n", len(meds), exportOut)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	c := client.New(checkServer, checkTimeout, logger)

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("server %s is not healthy: %w", checkServer, err)
	}
	logger.Debug("server healthy", zap.String("database", health["database"]))

	req := service.SymptomCheckRequest{
		Symptoms: strings.Join(args, ", "),
	}
	if checkGender != "" {
		gender := checkGender
		req.Gender = &gender
	}
	if checkAge > 0 {
		age := checkAge
		req.Age = &age
	}

	resp, err := c.SymptomCheck(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
