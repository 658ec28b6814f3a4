package repository

import (
	"context"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

// AIRepository produces commentary on computed metrics
type AIRepository interface {
	// Advise comments on a location and its recent calculations
	Advise(ctx context.Context, location entity.Location, history []entity.Calculation) (string, error)
}
