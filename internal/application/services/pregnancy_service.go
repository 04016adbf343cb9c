package services

import (
	"context"
	"fmt"

	"momfit.app/cli/internal/application/ports"
	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

const (
	pregnancyPath   = "/pregnancy"
	pregnancyMePath = "/pregnancy/me"
)

// PregnancyService registers and reads the user's pregnancy profile.
type PregnancyService struct {
	api ports.APIGateway
}

func NewPregnancyService(api ports.APIGateway) *PregnancyService {
	return &PregnancyService{api: api}
}

func (s *PregnancyService) Register(ctx context.Context, reg momfitdomain.PregnancyRegistration) (*momfitdomain.PregnancyInfo, error) {
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pregnancy registration: %w", err)
	}

	body, err := s.api.Create(ctx, pregnancyPath, reg.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to register pregnancy: %w", err)
	}

	var info momfitdomain.PregnancyInfo
	if err := body.Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode pregnancy info: %w", err)
	}
	return &info, nil
}

func (s *PregnancyService) Me(ctx context.Context) (*momfitdomain.PregnancyInfo, error) {
	body, err := s.api.Fetch(ctx, pregnancyMePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pregnancy info: %w", err)
	}

	var info momfitdomain.PregnancyInfo
	if err := body.Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode pregnancy info: %w", err)
	}
	return &info, nil
}
