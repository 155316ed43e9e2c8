package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medguide/internal/database"
	"medguide/internal/domain"
)

// SQLSymptomChecksRepository appends rows to symptom_checks.
type SQLSymptomChecksRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLSymptomChecksRepository(db *sql.DB, dialect database.Dialect) *SQLSymptomChecksRepository {
	return &SQLSymptomChecksRepository{db: db, dialect: dialect}
}

var _ SymptomChecksRepository = (*SQLSymptomChecksRepository)(nil)

func (r *SQLSymptomChecksRepository) AppendSymptomCheck(ctx context.Context, log *domain.SymptomCheckLog) (int64, error) {
	symptoms := log.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	predicted := log.PredictedDiseases
	if predicted == nil {
		predicted = []string{}
	}
	symptomsJSON, err := encodeJSON(symptoms)
	if err != nil {
		return 0, err
	}
	predictedJSON, err := encodeJSON(predicted)
	if err != nil {
		return 0, err
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO symptom_checks (symptoms, predicted_diseases, confidence_score, user_age, user_gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)
	var id int64
	err = r.db.QueryRowContext(ctx, query,
		symptomsJSON,
		predictedJSON,
		log.ConfidenceScore,
		log.UserAge,
		log.UserGender,
		log.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to append symptom check: %w", err)
	}
	log.ID = id
	return id, nil
}

func (r *SQLSymptomChecksRepository) CountSymptomChecks(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM symptom_checks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count symptom checks: %w", err)
	}
	return n, nil
}

// SQLConsultationsRepository appends rows to medical_consultations.
type SQLConsultationsRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLConsultationsRepository(db *sql.DB, dialect database.Dialect) *SQLConsultationsRepository {
	return &SQLConsultationsRepository{db: db, dialect: dialect}
}

var _ ConsultationsRepository = (*SQLConsultationsRepository)(nil)

func (r *SQLConsultationsRepository) AppendConsultation(ctx context.Context, log *domain.ConsultationLog) (int64, error) {
	medicines, err := encodeJSON(log.RecommendedMedicines)
	if err != nil {
		return 0, err
	}
	if log.ConsultationDate.IsZero() {
		log.ConsultationDate = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO medical_consultations (
			patient_name, age, gender, symptoms, diagnosis,
			recommended_medicines, consultation_date, doctor_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`)
	var id int64
	err = r.db.QueryRowContext(ctx, query,
		nullString(log.PatientName),
		log.Age,
		nullString(log.Gender),
		nullString(log.Symptoms),
		nullString(log.Diagnosis),
		medicines,
		log.ConsultationDate,
		nullString(log.DoctorNotes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to append consultation: %w", err)
	}
	log.ID = id
	return id, nil
}

func (r *SQLConsultationsRepository) CountConsultations(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medical_consultations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count consultations: %w", err)
	}
	return n, nil
}

// NewSQLRepositories wires every SQL repository against one connection.
func NewSQLRepositories(db *sql.DB, dialect database.Dialect) *Repositories {
	return &Repositories{
		Medicines:     NewSQLMedicinesRepository(db, dialect),
		Diseases:      NewSQLDiseasesRepository(db, dialect),
		SymptomChecks: NewSQLSymptomChecksRepository(db, dialect),
		Consultations: NewSQLConsultationsRepository(db, dialect),
	}
}
