package parser

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

// maxShelfLifeDays upper bound of the expiry column
const maxShelfLifeDays = 36500

type catalogParser struct {
	excel *excelParser
	csv   *csvParser
}

// NewCatalogParser parser for .xlsx and .csv catalog uploads
func NewCatalogParser() repository.CatalogParser {
	return &catalogParser{
		excel: &excelParser{},
		csv:   &csvParser{},
	}
}

// ParseCatalogFromBytes picks the format from the file extension
func (p *catalogParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return p.excel.parse(data)
	case ".csv":
		return p.csv.parse(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filename)
	}
}

// parseAmount accepts "1,200.50", "$3", " 0.0125 "
func parseAmount(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	for _, r := range []string{",", " ", "$", "€", "£", "m2", "m²", "days", "day"} {
		s = strings.ReplaceAll(s, r, "")
	}

	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number format: %s", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value: %s", raw)
	}
	return v, nil
}

// parseDays shelf life in whole days, fractions are truncated
func parseDays(raw string) (int, error) {
	v, err := parseAmount(raw)
	if err != nil {
		return 0, err
	}
	if v > maxShelfLifeDays {
		return 0, fmt.Errorf("shelf life out of range: %s", raw)
	}
	return int(v), nil
}

func validateProduct(p entity.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	for _, v := range []float64{p.Cost, p.Price, p.Dimension} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("product %s has a non-finite field", p.Name)
		}
	}
	if p.Cost < 0 || p.Price < 0 || p.Dimension < 0 || p.ShelfLifeDays < 0 {
		return fmt.Errorf("product %s has a negative field", p.Name)
	}
	return nil
}
