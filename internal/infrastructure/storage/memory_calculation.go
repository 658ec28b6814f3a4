package storage

import (
	"context"
	"sync"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

type memoryCalculationRepository struct {
	mu      sync.RWMutex
	history map[int64][]entity.Calculation
	maxSize int
}

// NewMemoryCalculationRepository in-memory calculation history
func NewMemoryCalculationRepository(maxSize int) repository.CalculationRepository {
	return &memoryCalculationRepository{
		history: make(map[int64][]entity.Calculation),
		maxSize: maxSize,
	}
}

// Save appends and trims to maxSize
func (m *memoryCalculationRepository) Save(ctx context.Context, calc entity.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	calcs := append(m.history[calc.UserID], calc)
	if m.maxSize > 0 && len(calcs) > m.maxSize {
		calcs = calcs[len(calcs)-m.maxSize:]
	}
	m.history[calc.UserID] = calcs
	return nil
}

func (m *memoryCalculationRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calcs := m.history[userID]
	if limit > 0 && len(calcs) > limit {
		calcs = calcs[len(calcs)-limit:]
	}
	return append([]entity.Calculation{}, calcs...), nil
}

func (m *memoryCalculationRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.history, userID)
	return nil
}
