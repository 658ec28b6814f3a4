package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

type memoryWorkspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[int64]entity.Workspace
}

// NewMemoryWorkspaceRepository in-memory workspace repository
func NewMemoryWorkspaceRepository() repository.WorkspaceRepository {
	return &memoryWorkspaceRepository{
		workspaces: make(map[int64]entity.Workspace),
	}
}

// Get creates the default workspace on first use
func (m *memoryWorkspaceRepository) Get(ctx context.Context, userID int64) (*entity.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, exists := m.workspaces[userID]
	if !exists {
		ws = entity.NewWorkspace(userID)
		m.workspaces[userID] = ws
	}
	out := copyWorkspace(ws)
	return &out, nil
}

func (m *memoryWorkspaceRepository) Save(ctx context.Context, workspace entity.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	workspace.LastActivity = time.Now()
	m.workspaces[workspace.UserID] = copyWorkspace(workspace)
	return nil
}

func (m *memoryWorkspaceRepository) Delete(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.workspaces, userID)
	return nil
}

func copyWorkspace(ws entity.Workspace) entity.Workspace {
	ws.Locations = append([]string(nil), ws.Locations...)
	ws.Products = append([]string(nil), ws.Products...)
	ws.Customers = append([]string(nil), ws.Customers...)
	return ws
}
