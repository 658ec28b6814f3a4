package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"go.uber.org/zap"
)

// csvRow canonical csv catalog layout
type csvRow struct {
	Name      string `csv:"product"`
	Cost      string `csv:"cost"`
	Sell      string `csv:"sell"`
	Dimension string `csv:"dimension"`
	Expired   string `csv:"expired"`
}

type csvParser struct{}

// parse reads the canonical header with gocsv; other headers fall back to column mapping
func (c *csvParser) parse(data []byte) ([]entity.Product, error) {
	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err == nil && len(rows) > 0 && rows[0].Name != "" {
		return c.fromRows(rows)
	}

	raw, err := gocsv.DefaultCSVReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return parseRows(raw)
}

func (c *csvParser) fromRows(rows []*csvRow) ([]entity.Product, error) {
	var products []entity.Product
	for i, row := range rows {
		product, err := row.toProduct()
		if err != nil {
			zap.S().Warnf("skipping csv row %d: %v", i+2, err)
			continue
		}
		products = append(products, product)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found in csv (%d rows)", len(rows))
	}
	return products, nil
}

func (r *csvRow) toProduct() (entity.Product, error) {
	p := entity.Product{Name: strings.TrimSpace(r.Name)}
	fields := []struct {
		raw string
		dst *float64
	}{
		{r.Cost, &p.Cost},
		{r.Sell, &p.Price},
		{r.Dimension, &p.Dimension},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := parseAmount(f.raw)
		if err != nil {
			return p, err
		}
		*f.dst = v
	}
	if r.Expired != "" {
		days, err := parseDays(r.Expired)
		if err != nil {
			return p, err
		}
		p.ShelfLifeDays = days
	}
	return p, validateProduct(p)
}
