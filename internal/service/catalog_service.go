package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medguide/internal/catalog"
	"medguide/internal/domain"
	"medguide/internal/repository"
	"medguide/internal/store"

	"go.uber.org/zap"
)

const (
	medicineSummariesKey = "medguide:catalog:medicines"
	diseasesKey          = "medguide:catalog:diseases"
)

// CatalogService serves the read-only medicine and disease catalog.
type CatalogService interface {
	ListMedicines(ctx context.Context) ([]domain.MedicineSummary, error)
	GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error)
	ListDiseases(ctx context.Context) ([]*domain.Disease, error)
	GetDisease(ctx context.Context, id int64) (*domain.Disease, error)
	// ExportMedicines renders the full medicine table as an XLSX workbook.
	ExportMedicines(ctx context.Context) ([]byte, error)
}

type catalogService struct {
	medicines repository.MedicinesRepository
	diseases  repository.DiseasesRepository
	kv        store.KV // optional
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCatalogService creates the catalog service. kv may be nil, in which case
// every list call goes to the repository.
func NewCatalogService(
	medicines repository.MedicinesRepository,
	diseases repository.DiseasesRepository,
	kv store.KV,
	ttl time.Duration,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		medicines: medicines,
		diseases:  diseases,
		kv:        kv,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *catalogService) ListMedicines(ctx context.Context) ([]domain.MedicineSummary, error) {
	var cached []domain.MedicineSummary
	if s.cacheGet(ctx, medicineSummariesKey, &cached) {
		return cached, nil
	}

	meds, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	out := make([]domain.MedicineSummary, 0, len(meds))
	for _, m := range meds {
		out = append(out, m.Summary())
	}
	s.cacheSet(ctx, medicineSummariesKey, out)
	return out, nil
}

func (s *catalogService) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	m, err := s.medicines.GetMedicine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine %d: %w", id, err)
	}
	return m, nil
}

func (s *catalogService) ListDiseases(ctx context.Context) ([]*domain.Disease, error) {
	var cached []*domain.Disease
	if s.cacheGet(ctx, diseasesKey, &cached) {
		return cached, nil
	}

	diseases, err := s.diseases.ListDiseases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	if diseases == nil {
		diseases = []*domain.Disease{}
	}
	s.cacheSet(ctx, diseasesKey, diseases)
	return diseases, nil
}

func (s *catalogService) GetDisease(ctx context.Context, id int64) (*domain.Disease, error) {
	d, err := s.diseases.GetDisease(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get disease %d: %w", id, err)
	}
	return d, nil
}

func (s *catalogService) ExportMedicines(ctx context.Context) ([]byte, error) {
	meds, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return catalog.ExportMedicinesXLSX(meds)
}

// cacheGet reports whether key was found and decoded into out.
// Cache errors are logged and treated as a miss.
func (s *catalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.kv == nil {
		return false
	}
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("catalog cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *catalogService) cacheSet(ctx context.Context, key string, v any) {
	if s.kv == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, key, string(b), s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCatalogCache drops cached catalog lists, e.g. after a seed.
func InvalidateCatalogCache(ctx context.Context, kv store.KV) error {
	if kv == nil {
		return nil
	}
	return kv.Delete(ctx, medicineSummariesKey, diseasesKey)
}
