package repository

import (
	"context"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

// LocationRepository per-user location records
type LocationRepository interface {
	// Save replaces the stored record wholesale
	Save(ctx context.Context, userID int64, location entity.Location) error

	// Get returns an error when the location was never referenced
	Get(ctx context.Context, userID int64, name string) (*entity.Location, error)

	// GetOrCreate creates the location on first reference
	GetOrCreate(ctx context.Context, userID int64, name string) (*entity.Location, error)

	// List all locations of a user sorted by name
	List(ctx context.Context, userID int64) ([]entity.Location, error)

	// Clear drops the user's session data
	Clear(ctx context.Context, userID int64) error
}
