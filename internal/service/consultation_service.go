package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medguide/internal/diagnosis"
	"medguide/internal/domain"
	"medguide/internal/repository"

	"go.uber.org/zap"
)

// ConsultationService writes consultation audit records. Nothing reads them back.
type ConsultationService interface {
	Record(ctx context.Context, req ConsultationRequest) (int64, error)
}

// ConsultationRequest is the body of POST /api/consultations.
type ConsultationRequest struct {
	PatientName          string   `json:"patient_name"`
	Age                  int      `json:"age"`
	Gender               string   `json:"gender"`
	Symptoms             string   `json:"symptoms"`
	Diagnosis            string   `json:"diagnosis"`
	RecommendedMedicines []string `json:"recommended_medicines"`
	DoctorNotes          string   `json:"doctor_notes"`
}

type consultationService struct {
	consultations repository.ConsultationsRepository
	now           func() time.Time
	logger        *zap.Logger
}

func NewConsultationService(consultations repository.ConsultationsRepository, logger *zap.Logger) ConsultationService {
	return &consultationService{consultations: consultations, now: time.Now, logger: logger}
}

func (s *consultationService) Record(ctx context.Context, req ConsultationRequest) (int64, error) {
	if strings.TrimSpace(req.PatientName) == "" {
		return 0, fmt.Errorf("%w: patient_name is required", ErrInvalidInput)
	}
	if req.Age < 0 {
		return 0, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}

	medicines := req.RecommendedMedicines
	if medicines == nil && req.Diagnosis != "" {
		medicines = diagnosis.Recommend(req.Diagnosis, req.Age, 0, diagnosis.DefaultSeverity).Medicines
	}

	id, err := s.consultations.AppendConsultation(ctx, &domain.ConsultationLog{
		PatientName:          req.PatientName,
		Age:                  req.Age,
		Gender:               req.Gender,
		Symptoms:             req.Symptoms,
		Diagnosis:            req.Diagnosis,
		RecommendedMedicines: medicines,
		ConsultationDate:     s.now().UTC(),
		DoctorNotes:          req.DoctorNotes,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record consultation: %w", err)
	}
	s.logger.Info("consultation recorded", zap.Int64("id", id))
	return id, nil
}
