package service

import (
	"fmt"
	"strings"

	"medguide/internal/diagnosis"
)

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	Disease  string  `json:"disease"`
	Age      int     `json:"age,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Severity string  `json:"severity,omitempty"`
}

// Recommend validates req and looks up the static recommendation.
func Recommend(req RecommendationRequest) (diagnosis.Recommendation, error) {
	disease := strings.TrimSpace(req.Disease)
	if disease == "" {
		return diagnosis.Recommendation{}, fmt.Errorf("%w: disease is required", ErrInvalidInput)
	}
	severity := req.Severity
	if severity == "" {
		severity = diagnosis.DefaultSeverity
	}
	return diagnosis.Recommend(disease, req.Age, req.Weight, severity), nil
}
