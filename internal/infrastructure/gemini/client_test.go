package gemini

import (
	"strings"
	"testing"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

func TestBuildPrompt(t *testing.T) {
	loc := entity.NewLocation("Jakarta")
	loc.RentalCost = 120
	loc.Products["Orange"] = entity.Product{Cost: 1, Price: 2, Dimension: 0.02, ShelfLifeDays: 10}
	loc.Products["Apple"] = entity.Product{Cost: 1.2, Price: 2.5, Dimension: 0.0125, ShelfLifeDays: 7}

	prompt := BuildPrompt(loc, []entity.Calculation{
		{Kind: entity.KindCapacity, Summary: "Capacity 42.50%", Defined: true},
		{Kind: entity.KindROI, Summary: "ROI with zero investment", Defined: false},
	})

	for _, want := range []string{"Location: Jakarta", "$120.00/day", "- Apple: cost $1.20", "[capacity] Capacity 42.50%", "(not computable)"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Index(prompt, "Apple") > strings.Index(prompt, "Orange") {
		t.Error("catalog should be sorted by product name")
	}
}
