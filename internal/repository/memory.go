package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medguide/internal/domain"
)

// MemoryStore backs every repository with process memory. It is used when the
// database is unreachable at startup so the API keeps answering.
// Rows are copied on the way in and out.
type MemoryStore struct {
	mu sync.RWMutex

	medicines     []domain.Medicine
	diseases      []domain.Disease
	symptomChecks []domain.SymptomCheckLog
	consultations []domain.ConsultationLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var (
	_ MedicinesRepository     = (*MemoryStore)(nil)
	_ DiseasesRepository      = (*MemoryStore)(nil)
	_ SymptomChecksRepository = (*MemoryStore)(nil)
	_ ConsultationsRepository = (*MemoryStore)(nil)
)

// Repositories exposes the store through the repository bundle.
func (s *MemoryStore) Repositories() *Repositories {
	return &Repositories{
		Medicines:     s,
		Diseases:      s,
		SymptomChecks: s,
		Consultations: s,
	}
}

// ---- medicines ----

func (s *MemoryStore) ListMedicines(_ context.Context) ([]*domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Medicine, 0, len(s.medicines))
	for i := range s.medicines {
		m := s.medicines[i]
		out = append(out, &m)
	}
	return out, nil
}

func (s *MemoryStore) GetMedicine(_ context.Context, id int64) (*domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.medicines {
		if s.medicines[i].ID == id {
			m := s.medicines[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CountMedicines(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.medicines), nil
}

func (s *MemoryStore) CreateMedicine(_ context.Context, m *domain.Medicine) (int64, error) {
	if m.Name == "" {
		return 0, fmt.Errorf("medicine name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = int64(len(s.medicines) + 1)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.medicines = append(s.medicines, *m)
	return m.ID, nil
}

// ---- diseases ----

func (s *MemoryStore) ListDiseases(_ context.Context) ([]*domain.Disease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Disease, 0, len(s.diseases))
	for i := range s.diseases {
		d := s.diseases[i]
		out = append(out, &d)
	}
	return out, nil
}

func (s *MemoryStore) GetDisease(_ context.Context, id int64) (*domain.Disease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.diseases {
		if s.diseases[i].ID == id {
			d := s.diseases[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CountDiseases(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.diseases), nil
}

func (s *MemoryStore) CreateDisease(_ context.Context, d *domain.Disease) (int64, error) {
	if d.Name == "" {
		return 0, fmt.Errorf("disease name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = int64(len(s.diseases) + 1)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	s.diseases = append(s.diseases, *d)
	return d.ID, nil
}

// ---- logs ----

func (s *MemoryStore) AppendSymptomCheck(_ context.Context, log *domain.SymptomCheckLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = int64(len(s.symptomChecks) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	row := *log
	row.Symptoms = append([]string(nil), log.Symptoms...)
	row.PredictedDiseases = append([]string(nil), log.PredictedDiseases...)
	s.symptomChecks = append(s.symptomChecks, row)
	return log.ID, nil
}

func (s *MemoryStore) CountSymptomChecks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symptomChecks), nil
}

func (s *MemoryStore) AppendConsultation(_ context.Context, log *domain.ConsultationLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = int64(len(s.consultations) + 1)
	if log.ConsultationDate.IsZero() {
		log.ConsultationDate = time.Now().UTC()
	}
	row := *log
	row.RecommendedMedicines = append([]string(nil), log.RecommendedMedicines...)
	s.consultations = append(s.consultations, row)
	return log.ID, nil
}

func (s *MemoryStore) CountConsultations(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.consultations), nil
}

// SymptomChecks returns a copy of the appended symptom check rows in insertion order.
func (s *MemoryStore) SymptomChecks() []domain.SymptomCheckLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SymptomCheckLog(nil), s.symptomChecks...)
}

// Consultations returns a copy of the appended consultation rows in insertion order.
func (s *MemoryStore) Consultations() []domain.ConsultationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ConsultationLog(nil), s.consultations...)
}
