package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

type memoryLocationRepository struct {
	mu        sync.RWMutex
	locations map[int64]map[string]entity.Location // key: user ID, then location name
}

// NewMemoryLocationRepository in-memory session store of locations
func NewMemoryLocationRepository() repository.LocationRepository {
	return &memoryLocationRepository{
		locations: make(map[int64]map[string]entity.Location),
	}
}

// Save replaces the stored record
func (m *memoryLocationRepository) Save(ctx context.Context, userID int64, location entity.Location) error {
	name := strings.TrimSpace(location.Name)
	if name == "" {
		return fmt.Errorf("location name is empty")
	}
	location.Name = name

	m.mu.Lock()
	defer m.mu.Unlock()

	m.userLocations(userID)[name] = location.Clone()
	return nil
}

func (m *memoryLocationRepository) Get(ctx context.Context, userID int64, name string) (*entity.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	location, exists := m.locations[userID][name]
	if !exists {
		return nil, fmt.Errorf("location not found: %s", name)
	}
	out := location.Clone()
	return &out, nil
}

// GetOrCreate creates the location on first reference
func (m *memoryLocationRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("location name is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	locations := m.userLocations(userID)
	location, exists := locations[name]
	if !exists {
		location = entity.NewLocation(name)
		locations[name] = location
	}
	out := location.Clone()
	return &out, nil
}

func (m *memoryLocationRepository) List(ctx context.Context, userID int64) ([]entity.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Location, 0, len(m.locations[userID]))
	for _, location := range m.locations[userID] {
		out = append(out, location.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memoryLocationRepository) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.locations, userID)
	return nil
}

// userLocations caller must hold the write lock
func (m *memoryLocationRepository) userLocations(userID int64) map[string]entity.Location {
	locations, ok := m.locations[userID]
	if !ok {
		locations = make(map[string]entity.Location)
		m.locations[userID] = locations
	}
	return locations
}
