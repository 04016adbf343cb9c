package services

import (
	"context"
	"fmt"

	"momfit.app/cli/internal/application/ports"
	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

const symptomPath = "/symptom"

// SymptomService submits the daily symptom check.
type SymptomService struct {
	api ports.APIGateway
}

func NewSymptomService(api ports.APIGateway) *SymptomService {
	return &SymptomService{api: api}
}

// Submit reports symptoms. An empty list is a valid "no symptoms" answer and
// is not sent; the backend rejects empty reports.
func (s *SymptomService) Submit(ctx context.Context, symptoms []momfitdomain.Symptom) (bool, error) {
	if len(symptoms) == 0 {
		return false, nil
	}
	if _, err := s.api.Create(ctx, symptomPath, momfitdomain.SymptomReport{Symptoms: symptoms}); err != nil {
		return false, fmt.Errorf("failed to submit symptoms: %w", err)
	}
	return true, nil
}
