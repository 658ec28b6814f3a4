package repository

import (
	"context"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

// CalculationRepository history of computed metrics
type CalculationRepository interface {
	// Save appends a calculation, trimming the user's history to the configured size
	Save(ctx context.Context, calc entity.Calculation) error

	// GetHistory oldest-first, last limit entries (0 = all)
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Calculation, error)

	ClearHistory(ctx context.Context, userID int64) error
}
