package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"go.uber.org/zap"
)

// Column keys understood in a catalog sheet
const (
	colName      = "name"
	colCost      = "cost"
	colPrice     = "price"
	colDimension = "dimension"
	colShelfLife = "shelf_life"
)

type excelParser struct{}

func (e *excelParser) parse(data []byte) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return parseRows(rows)
}

// parseRows shared by every tabular format.
// Without a header the columns are Name | Cost | Sell | Dimension | Expired.
func parseRows(rows [][]string) ([]entity.Product, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	startRow := 1
	var columnMap map[string]int
	if len(rows[0]) > 1 && isNumeric(rows[0][1]) {
		startRow = 0
		columnMap = map[string]int{colName: 0, colCost: 1, colPrice: 2, colDimension: 3, colShelfLife: 4}
		zap.S().Debugf("catalog has no header, using positional columns")
	} else {
		columnMap = mapColumns(rows[0])
	}

	var products []entity.Product
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cell(row, columnMap, colName)
		if name == "" {
			continue
		}

		product := entity.Product{Name: name}
		var rowErr error
		readAmount := func(key string) float64 {
			raw := cell(row, columnMap, key)
			if raw == "" || rowErr != nil {
				return 0
			}
			v, err := parseAmount(raw)
			if err != nil {
				rowErr = fmt.Errorf("row %d, %s: %w", i+1, key, err)
			}
			return v
		}

		product.Cost = readAmount(colCost)
		product.Price = readAmount(colPrice)
		product.Dimension = readAmount(colDimension)
		if raw := cell(row, columnMap, colShelfLife); raw != "" && rowErr == nil {
			days, err := parseDays(raw)
			if err != nil {
				rowErr = fmt.Errorf("row %d, %s: %w", i+1, colShelfLife, err)
			}
			product.ShelfLifeDays = days
		}

		if rowErr != nil {
			zap.S().Warnf("skipping catalog row: %v", rowErr)
			continue
		}
		if err := validateProduct(product); err != nil {
			zap.S().Warnf("skipping catalog row %d: %v", i+1, err)
			continue
		}

		products = append(products, product)
	}

	zap.S().Infof("catalog parsed: %d products", len(products))

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found (parsed %d rows, but all were invalid)", len(rows)-startRow)
	}
	return products, nil
}

// mapColumns header row → column index
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		title := strings.ToLower(strings.TrimSpace(col))
		var key string

		switch {
		case contains(title, "dimension", "dim", "size", "area", "m2"):
			key = colDimension
		case contains(title, "expired", "expiry", "shelf", "life"):
			key = colShelfLife
		case contains(title, "cost", "purchase", "buy"):
			key = colCost
		case contains(title, "sell", "price"):
			key = colPrice
		case contains(title, "name", "product", "item"):
			key = colName
		default:
			continue
		}

		if _, taken := columnMap[key]; !taken {
			columnMap[key] = i
		}
	}

	if _, ok := columnMap[colName]; !ok && len(header) > 0 {
		columnMap[colName] = 0
	}

	return columnMap
}

func cell(row []string, columnMap map[string]int, key string) string {
	idx, ok := columnMap[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	return err == nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}
