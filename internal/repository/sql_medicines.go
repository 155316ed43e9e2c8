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

type rowScanner interface {
	Scan(dest ...any) error
}

// SQLMedicinesRepository reads and seeds the medicines table on Postgres or SQLite.
type SQLMedicinesRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLMedicinesRepository(db *sql.DB, dialect database.Dialect) *SQLMedicinesRepository {
	return &SQLMedicinesRepository{db: db, dialect: dialect}
}

var _ MedicinesRepository = (*SQLMedicinesRepository)(nil)

const medicineColumns = `
		id,
		name,
		generic_name,
		description,
		dosage_forms,
		indications,
		contraindications,
		side_effects,
		precautions,
		interactions,
		dosage_info,
		category,
		manufacturer,
		image_url,
		diseases_treated,
		severity_level,
		created_at`

func (r *SQLMedicinesRepository) ListMedicines(ctx context.Context) ([]*domain.Medicine, error) {
	query := `SELECT` + medicineColumns + ` FROM medicines ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	defer rows.Close()

	out := []*domain.Medicine{}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medicine: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return out, nil
}

func (r *SQLMedicinesRepository) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	query := r.dialect.Rebind(`SELECT` + medicineColumns + ` FROM medicines WHERE id = $1`)

	m, err := scanMedicine(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medicine %d: %w", id, err)
	}
	return m, nil
}

func (r *SQLMedicinesRepository) CountMedicines(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count medicines: %w", err)
	}
	return n, nil
}

func (r *SQLMedicinesRepository) CreateMedicine(ctx context.Context, m *domain.Medicine) (int64, error) {
	if m.Name == "" {
		return 0, fmt.Errorf("medicine name is required")
	}
	dosageForms, err := encodeJSON(m.DosageForms)
	if err != nil {
		return 0, err
	}
	interactions, err := encodeJSON(m.Interactions)
	if err != nil {
		return 0, err
	}
	dosageInfo, err := encodeJSON(m.DosageInfo)
	if err != nil {
		return 0, err
	}
	diseasesTreated, err := encodeJSON(m.DiseasesTreated)
	if err != nil {
		return 0, err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO medicines (
			name, generic_name, description, dosage_forms, indications,
			contraindications, side_effects, precautions, interactions, dosage_info,
			category, manufacturer, image_url, diseases_treated, severity_level, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`)

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		m.Name,
		m.GenericName,
		m.Description,
		dosageForms,
		nullString(m.Indications),
		nullString(m.Contraindications),
		nullString(m.SideEffects),
		nullString(m.Precautions),
		interactions,
		dosageInfo,
		nullString(m.Category),
		nullString(m.Manufacturer),
		nullString(m.ImageURL),
		diseasesTreated,
		nullString(m.SeverityLevel),
		m.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create medicine %q: %w", m.Name, err)
	}
	m.ID = id
	return id, nil
}

func scanMedicine(row rowScanner) (*domain.Medicine, error) {
	var m domain.Medicine
	var dosageForms, indications, contraindications, sideEffects, precautions sql.NullString
	var interactions, dosageInfo, category, manufacturer, imageURL sql.NullString
	var diseasesTreated, severityLevel sql.NullString

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.GenericName,
		&m.Description,
		&dosageForms,
		&indications,
		&contraindications,
		&sideEffects,
		&precautions,
		&interactions,
		&dosageInfo,
		&category,
		&manufacturer,
		&imageURL,
		&diseasesTreated,
		&severityLevel,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.DosageForms = decodeList(dosageForms)
	m.Indications = indications.String
	m.Contraindications = contraindications.String
	m.SideEffects = sideEffects.String
	m.Precautions = precautions.String
	m.Interactions = decodeList(interactions)
	m.DosageInfo = decodeMap(dosageInfo)
	m.Category = category.String
	m.Manufacturer = manufacturer.String
	m.ImageURL = imageURL.String
	m.DiseasesTreated = decodeList(diseasesTreated)
	m.SeverityLevel = severityLevel.String
	return &m, nil
}
