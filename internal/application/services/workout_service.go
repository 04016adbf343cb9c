package services

import (
	"context"
	"fmt"

	"momfit.app/cli/internal/application/ports"
	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

const workoutPath = "/exercise-sessions"

type startWorkoutRequest struct {
	ExerciseIDs []int64 `json:"exercise_ids"`
}

// WorkoutService drives an exercise session from start to finish.
type WorkoutService struct {
	api ports.APIGateway
}

func NewWorkoutService(api ports.APIGateway) *WorkoutService {
	return &WorkoutService{api: api}
}

func (s *WorkoutService) Start(ctx context.Context, exerciseIDs []int64) (*momfitdomain.WorkoutSession, error) {
	if len(exerciseIDs) == 0 {
		return nil, fmt.Errorf("at least one exercise is required")
	}

	body, err := s.api.Create(ctx, workoutPath, startWorkoutRequest{ExerciseIDs: exerciseIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to start workout: %w", err)
	}

	var session momfitdomain.WorkoutSession
	if err := body.Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode workout session: %w", err)
	}
	return &session, nil
}

func (s *WorkoutService) Progress(ctx context.Context, sessionID int64, progress momfitdomain.WorkoutProgress) (*momfitdomain.WorkoutSession, error) {
	body, err := s.api.Patch(ctx, sessionPath(sessionID), progress)
	if err != nil {
		return nil, fmt.Errorf("failed to record progress for workout %d: %w", sessionID, err)
	}
	if body.NoContent() {
		return nil, nil
	}

	var session momfitdomain.WorkoutSession
	if err := body.Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode workout session: %w", err)
	}
	return &session, nil
}

func (s *WorkoutService) Finish(ctx context.Context, sessionID int64) (*momfitdomain.WorkoutReport, error) {
	body, err := s.api.Create(ctx, sessionPath(sessionID)+"/complete", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to finish workout %d: %w", sessionID, err)
	}

	var report momfitdomain.WorkoutReport
	if err := body.Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode workout report: %w", err)
	}
	return &report, nil
}

// Abandon discards an unfinished session.
func (s *WorkoutService) Abandon(ctx context.Context, sessionID int64) error {
	if _, err := s.api.Remove(ctx, sessionPath(sessionID), nil); err != nil {
		return fmt.Errorf("failed to abandon workout %d: %w", sessionID, err)
	}
	return nil
}

func sessionPath(id int64) string {
	return fmt.Sprintf("%s/%d", workoutPath, id)
}
