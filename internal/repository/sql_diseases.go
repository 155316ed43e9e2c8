package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medguide/internal/database"
	"medguide/internal/domain"
)

// SQLDiseasesRepository reads and seeds the diseases table.
type SQLDiseasesRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLDiseasesRepository(db *sql.DB, dialect database.Dialect) *SQLDiseasesRepository {
	return &SQLDiseasesRepository{db: db, dialect: dialect}
}

var _ DiseasesRepository = (*SQLDiseasesRepository)(nil)

func (r *SQLDiseasesRepository) ListDiseases(ctx context.Context) ([]*domain.Disease, error) {
	query := `
		SELECT id, name, description, symptoms, severity, treatment_info, created_at
		FROM diseases
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	defer rows.Close()

	out := []*domain.Disease{}
	for rows.Next() {
		d, err := scanDisease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disease: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	return out, nil
}

func (r *SQLDiseasesRepository) GetDisease(ctx context.Context, id int64) (*domain.Disease, error) {
	query := r.dialect.Rebind(`
		SELECT id, name, description, symptoms, severity, treatment_info, created_at
		FROM diseases
		WHERE id = $1
	`)
	d, err := scanDisease(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get disease %d: %w", id, err)
	}
	return d, nil
}

func (r *SQLDiseasesRepository) CountDiseases(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diseases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count diseases: %w", err)
	}
	return n, nil
}

func (r *SQLDiseasesRepository) CreateDisease(ctx context.Context, d *domain.Disease) (int64, error) {
	if d.Name == "" {
		return 0, fmt.Errorf("disease name is required")
	}
	symptoms, err := encodeJSON(d.Symptoms)
	if err != nil {
		return 0, err
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO diseases (name, description, symptoms, severity, treatment_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)
	var id int64
	err = r.db.QueryRowContext(ctx, query,
		d.Name,
		nullString(d.Description),
		symptoms,
		nullString(d.Severity),
		nullString(d.TreatmentInfo),
		d.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create disease %q: %w", d.Name, err)
	}
	d.ID = id
	return id, nil
}

func scanDisease(row rowScanner) (*domain.Disease, error) {
	var d domain.Disease
	var description, symptoms, severity, treatmentInfo sql.NullString
	if err := row.Scan(&d.ID, &d.Name, &description, &symptoms, &severity, &treatmentInfo, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Description = description.String
	d.Symptoms = decodeList(symptoms)
	d.Severity = severity.String
	d.TreatmentInfo = treatmentInfo.String
	return &d, nil
}
