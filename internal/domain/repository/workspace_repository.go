package repository

import (
	"context"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

// WorkspaceRepository sidebar state per user
type WorkspaceRepository interface {
	// Get returns the workspace, creating the defaults on first use
	Get(ctx context.Context, userID int64) (*entity.Workspace, error)

	Save(ctx context.Context, workspace entity.Workspace) error

	Delete(ctx context.Context, userID int64) error
}
