package repository

import (
	"context"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

// CatalogParser reads a product catalog from an uploaded file
type CatalogParser interface {
	// ParseCatalogFromBytes reads an uploaded document
	ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error)
}
