package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"medguide/internal/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a *sql.DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Open connects to the configured store and verifies the connection.
func Open(cfg *config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.Driver)
	if dialect != Postgres && dialect != SQLite {
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(string(dialect), cfg.GetDSN())
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// one connection so that :memory: databases are shared by every caller
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxConns > 0 {
			db.SetMaxOpenConns(cfg.MaxConns)
		}
		if cfg.MaxIdle > 0 {
			db.SetMaxIdleConns(cfg.MaxIdle)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}

// Close closes db if it is non-nil.
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Rebind rewrites $N placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Migrate creates the catalog and log tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	idColumn := "SERIAL PRIMARY KEY"
	if dialect == SQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
			id ` + idColumn + `,
			name VARCHAR(100) NOT NULL,
			generic_name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL,
			dosage_forms TEXT,
			indications TEXT,
			contraindications TEXT,
			side_effects TEXT,
			precautions TEXT,
			interactions TEXT,
			dosage_info TEXT,
			category VARCHAR(50),
			manufacturer VARCHAR(100),
			image_url VARCHAR(200),
			diseases_treated TEXT,
			severity_level VARCHAR(20),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS diseases (
			id ` + idColumn + `,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			symptoms TEXT,
			severity VARCHAR(20),
			treatment_info TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS symptom_checks (
			id ` + idColumn + `,
			symptoms TEXT NOT NULL,
			predicted_diseases TEXT,
			confidence_score DOUBLE PRECISION,
			user_age INTEGER,
			user_gender VARCHAR(10),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS medical_consultations (
			id ` + idColumn + `,
			patient_name VARCHAR(100),
			age INTEGER,
			gender VARCHAR(10),
			symptoms TEXT,
			diagnosis TEXT,
			recommended_medicines TEXT,
			consultation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			doctor_notes TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
