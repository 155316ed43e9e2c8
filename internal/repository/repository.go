package repository

import (
	"context"
	"errors"

	"medguide/internal/domain"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// MedicinesRepository reads the medicine catalog. Create is only used by seed/import.
type MedicinesRepository interface {
	ListMedicines(ctx context.Context) ([]*domain.Medicine, error)
	GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error)
	CountMedicines(ctx context.Context) (int, error)
	CreateMedicine(ctx context.Context, m *domain.Medicine) (int64, error)
}

// DiseasesRepository reads the disease catalog. Create is only used by seed/import.
type DiseasesRepository interface {
	ListDiseases(ctx context.Context) ([]*domain.Disease, error)
	GetDisease(ctx context.Context, id int64) (*domain.Disease, error)
	CountDiseases(ctx context.Context) (int, error)
	CreateDisease(ctx context.Context, d *domain.Disease) (int64, error)
}

// SymptomChecksRepository is append-only: there is no update or delete.
type SymptomChecksRepository interface {
	AppendSymptomCheck(ctx context.Context, log *domain.SymptomCheckLog) (int64, error)
	CountSymptomChecks(ctx context.Context) (int, error)
}

// ConsultationsRepository is append-only: there is no update or delete.
type ConsultationsRepository interface {
	AppendConsultation(ctx context.Context, log *domain.ConsultationLog) (int64, error)
	CountConsultations(ctx context.Context) (int, error)
}

// Repositories bundles every store the service layer needs.
type Repositories struct {
	Medicines     MedicinesRepository
	Diseases      DiseasesRepository
	SymptomChecks SymptomChecksRepository
	Consultations ConsultationsRepository
}
