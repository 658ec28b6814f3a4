package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

const adviceHistorySize = 10

// AdvisorUseCase AI commentary over the active location
type AdvisorUseCase interface {
	Advise(ctx context.Context, userID int64) (string, error)
}

type advisorUseCase struct {
	aiRepo    repository.AIRepository
	locations LocationUseCase
	calcRepo  repository.CalculationRepository
}

// NewAdvisorUseCase aiRepo may be nil, then Advise returns ErrAdvisorDisabled
func NewAdvisorUseCase(
	aiRepo repository.AIRepository,
	locations LocationUseCase,
	calcRepo repository.CalculationRepository,
) AdvisorUseCase {
	return &advisorUseCase{
		aiRepo:    aiRepo,
		locations: locations,
		calcRepo:  calcRepo,
	}
}

func (u *advisorUseCase) Advise(ctx context.Context, userID int64) (string, error) {
	if u.aiRepo == nil {
		return "", ErrAdvisorDisabled
	}

	loc, _, err := u.locations.Current(ctx, userID)
	if err != nil {
		return "", err
	}

	all, err := u.calcRepo.GetHistory(ctx, userID, 0)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	var history []entity.Calculation
	for _, calc := range all {
		if calc.Location == loc.Name {
			history = append(history, calc)
		}
	}
	if len(history) > adviceHistorySize {
		history = history[len(history)-adviceHistorySize:]
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	advice, err := u.aiRepo.Advise(ctx, *loc, history)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}
	return advice, nil
}
