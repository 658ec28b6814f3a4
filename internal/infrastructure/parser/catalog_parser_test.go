package parser

import (
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func byName(products []entity.Product) map[string]entity.Product {
	out := make(map[string]entity.Product, len(products))
	for _, p := range products {
		out[p.Name] = p
	}
	return out
}

func TestParseExcelWithHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Product", "Sell ($)", "Cost ($)", "Dimension (m2/unit)", "Expired Date (Day)"},
		{"Apple", "2.50", "1.20", "0.0125", "7"},
		{"Orange", "$3", "1,5", "0.02", "10"},
		{"", "", "", "", ""},
		{"Broken", "abc", "1", "0.1", "3"},
	})

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.xlsx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2: %+v", len(products), products)
	}

	apple := byName(products)["Apple"]
	if apple.Cost != 1.2 || apple.Price != 2.5 || apple.Dimension != 0.0125 || apple.ShelfLifeDays != 7 {
		t.Errorf("apple parsed as %+v", apple)
	}
	// thousands separators are stripped
	if orange := byName(products)["Orange"]; orange.Cost != 15 {
		t.Errorf("orange cost = %v, want 15", orange.Cost)
	}
}

func TestParseExcelPositional(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Melon", "4", "6", "0.05", "5"},
		{"Kiwi", "1", "2", "0.001", "14"},
	})

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "CATALOG.XLSX")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	melon := byName(products)["Melon"]
	if melon.Cost != 4 || melon.Price != 6 || melon.ShelfLifeDays != 5 {
		t.Errorf("melon parsed as %+v", melon)
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("product,cost,sell,dimension,expired\nApple,1.2,2.5,0.0125,7\nOrange,-1,3,0.02,10\n")

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Apple" || products[0].Dimension != 0.0125 {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestParseCSVFreeHeader(t *testing.T) {
	data := []byte("Item Name,Purchase Cost,Price,Size m2,Shelf life\nMelon,4,6,0.05,5 days\n")

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products", len(products))
	}
	if p := products[0]; p.Name != "Melon" || p.Cost != 4 || p.Price != 6 || p.Dimension != 0.05 || p.ShelfLifeDays != 5 {
		t.Errorf("melon parsed as %+v", p)
	}
}

func TestParseCSVRejectsNonFiniteValues(t *testing.T) {
	data := []byte("product,cost,sell,dimension,expired\nApple,NaN,2,inf,5\nOrange,1,+Inf,0.02,3\nMelon,4,6,0.05,1e30\nPear,1,2,0.01,4\n")

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Pear" {
		t.Errorf("only Pear should survive: %+v", products)
	}

	if _, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), []byte("product,cost,sell,dimension,expired\nApple,NaN,2,inf,5\n"), "catalog.csv"); err == nil {
		t.Error("a catalog of non-finite rows must fail")
	}
}

func TestParseExcelRejectsNonFiniteValues(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Product", "Cost", "Sell", "Dimension", "Expired"},
		{"Apple", "NaN", "2", "0.01", "5"},
		{"Orange", "1", "3", "-Inf", "5"},
		{"Melon", "4", "6", "0.05", "99999999"},
		{"Pear", "1", "2", "0.01", "4"},
	})

	products, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), data, "catalog.xlsx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Pear" || products[0].ShelfLifeDays != 4 {
		t.Errorf("only Pear should survive: %+v", products)
	}
}

func TestParseDays(t *testing.T) {
	if d, err := parseDays("7.9 days"); err != nil || d != 7 {
		t.Errorf("parseDays(7.9) = %d, %v", d, err)
	}
	for _, raw := range []string{"1e30", "36501", "inf", "-1"} {
		if _, err := parseDays(raw); err == nil {
			t.Errorf("parseDays(%q) should fail", raw)
		}
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	if _, err := NewCatalogParser().ParseCatalogFromBytes(context.Background(), []byte("x"), "catalog.pdf"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"1,200.50", 1200.5, false},
		{" $3 ", 3, false},
		{"0.0125 m2", 0.0125, false},
		{"7 days", 7, false},
		{"", 0, true},
		{"-4", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"-Infinity", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
