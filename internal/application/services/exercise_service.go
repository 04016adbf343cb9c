package services

import (
	"context"
	"fmt"

	"momfit.app/cli/internal/application/ports"
	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

const exercisesPath = "/exercises"

// ExerciseService reads the exercise catalogue.
type ExerciseService struct {
	api ports.APIGateway
}

func NewExerciseService(api ports.APIGateway) *ExerciseService {
	return &ExerciseService{api: api}
}

func (s *ExerciseService) List(ctx context.Context, filter momfitdomain.ExerciseFilter) ([]momfitdomain.Exercise, error) {
	body, err := s.api.Query(ctx, exercisesPath, filter.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	var exercises []momfitdomain.Exercise
	if err := body.Decode(&exercises); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}
	return exercises, nil
}

func (s *ExerciseService) Get(ctx context.Context, id int64) (*momfitdomain.Exercise, error) {
	body, err := s.api.Fetch(ctx, fmt.Sprintf("%s/%d", exercisesPath, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercise %d: %w", id, err)
	}

	var exercise momfitdomain.Exercise
	if err := body.Decode(&exercise); err != nil {
		return nil, fmt.Errorf("failed to decode exercise: %w", err)
	}
	return &exercise, nil
}
