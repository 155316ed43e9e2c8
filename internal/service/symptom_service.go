package service

import (
	"context"
	"fmt"
	"time"

	"medguide/internal/diagnosis"
	"medguide/internal/domain"
	"medguide/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultAge    = 25
	DefaultGender = "unknown"

	// ConsultProfessional is returned with every symptom check.
	ConsultProfessional = "Please consult a healthcare professional for proper diagnosis"
)

// SymptomService runs the keyword matcher and logs every invocation.
type SymptomService interface {
	Check(ctx context.Context, req SymptomCheckRequest) (*SymptomCheckResponse, error)
}

// SymptomCheckRequest is the body of POST /api/symptom-check.
// Nil Age and Gender take the defaults; an explicit empty gender is kept.
type SymptomCheckRequest struct {
	Symptoms string  `json:"symptoms"`
	Age      *int    `json:"age,omitempty"`
	Gender   *string `json:"gender,omitempty"`
}

type SymptomCheckResponse struct {
	PredictedDiseases []string `json:"predicted_diseases"`
	Recommendations   string   `json:"recommendations"`
}

type symptomService struct {
	checks repository.SymptomChecksRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewSymptomService(checks repository.SymptomChecksRepository, logger *zap.Logger) SymptomService {
	return &symptomService{checks: checks, now: time.Now, logger: logger}
}

// Check matches req.Symptoms and appends one symptom_checks row before
// returning. If the append fails no result is returned.
func (s *symptomService) Check(ctx context.Context, req SymptomCheckRequest) (*SymptomCheckResponse, error) {
	age := DefaultAge
	if req.Age != nil {
		age = *req.Age
	}
	gender := DefaultGender
	if req.Gender != nil {
		gender = *req.Gender
	}

	predicted := diagnosis.MatchDiseases(req.Symptoms)

	entry := &domain.SymptomCheckLog{
		Symptoms:          diagnosis.SplitSymptoms(req.Symptoms),
		PredictedDiseases: predicted,
		ConfidenceScore:   diagnosis.PlaceholderConfidence,
		UserAge:           age,
		UserGender:        gender,
		CreatedAt:         s.now().UTC(),
	}
	id, err := s.checks.AppendSymptomCheck(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record symptom check: %w", err)
	}
	s.logger.Debug("symptom check recorded",
		zap.Int64("id", id),
		zap.Int("matches", len(predicted)),
	)

	return &SymptomCheckResponse{
		PredictedDiseases: predicted,
		Recommendations:   ConsultProfessional,
	}, nil
}
