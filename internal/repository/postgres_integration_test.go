//go:build integration

package repository

import (
	"context"
	"os"
	"strconv"
	"testing"

	"medguide/internal/config"
	"medguide/internal/database"
	"medguide/internal/domain"

	"github.com/stretchr/testify/require"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func openPostgres(t *testing.T) *Repositories {
	cfg := &config.DatabaseConfig{
		Driver:   "postgres",
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "medguide"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
	db, dialect, err := database.Open(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, dialect))
	return NewSQLRepositories(db, dialect)
}

func TestPostgres_SymptomChecksAppend(t *testing.T) {
	repos := openPostgres(t)
	ctx := context.Background()

	before, err := repos.SymptomChecks.CountSymptomChecks(ctx)
	require.NoError(t, err)

	_, err = repos.SymptomChecks.AppendSymptomCheck(ctx, &domain.SymptomCheckLog{
		Symptoms:        []string{"rash"},
		ConfidenceScore: 0.75,
		UserAge:         25,
		UserGender:      "unknown",
	})
	require.NoError(t, err)

	after, err := repos.SymptomChecks.CountSymptomChecks(ctx)
	require.NoError(t, err)
	require.Equal(t, before+1, after)
}

func TestPostgres_MedicineRoundTrip(t *testing.T) {
	repos := openPostgres(t)
	ctx := context.Background()

	id, err := repos.Medicines.CreateMedicine(ctx, &domain.Medicine{
		Name:        "Integration Tablet",
		GenericName: "Integrium",
		Description: "created by integration test",
		DosageForms: []string{"tablet"},
	})
	require.NoError(t, err)

	got, err := repos.Medicines.GetMedicine(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"tablet"}, got.DosageForms)
}
