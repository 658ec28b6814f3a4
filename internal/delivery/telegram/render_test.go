package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/metrics"
	"github.com/yourusername/retail-sim-bot/internal/usecase"
)

func TestRenderCapacity(t *testing.T) {
	over := renderCapacity(&usecase.CapacityReport{
		Location: "Jakarta",
		Capacity: metrics.CapacityPercentage([]float64{0.01}, []float64{12000}, 50),
	})
	if !strings.HasPrefix(over, iconBad) || !strings.Contains(over, "240.00%") {
		t.Errorf("over capacity: %s", over)
	}

	within := renderCapacity(&usecase.CapacityReport{
		Location: "Jakarta",
		Capacity: metrics.CapacityPercentage([]float64{0.01}, []float64{1000}, 50),
	})
	if !strings.HasPrefix(within, iconOK) {
		t.Errorf("within capacity: %s", within)
	}

	undefined := renderCapacity(&usecase.CapacityReport{
		Location: "Jakarta",
		Capacity: metrics.CapacityPercentage([]float64{0.01}, []float64{1000}, 0),
	})
	if !strings.HasPrefix(undefined, iconWarning) {
		t.Errorf("zero area: %s", undefined)
	}
}

func TestRenderUndefinedResultsAsWarnings(t *testing.T) {
	be := renderBreakEven(&usecase.BreakEvenReport{BreakEven: metrics.BreakEvenPrice(100, 0, 0, 0)})
	roi := metrics.ROI(100, 0)
	vel := metrics.AverageVelocity(10, 0)
	change := renderChange(&usecase.ChangeReport{Variable: "Revenue", Change: metrics.PercentageChange(0, 5)})

	for _, text := range []string{be, renderROI(&roi), renderVelocity(&vel), change} {
		if !strings.HasPrefix(text, iconWarning) {
			t.Errorf("expected a warning: %s", text)
		}
	}
}

func TestRenderOutcomes(t *testing.T) {
	loss := renderSellingPrice(&usecase.SellingPriceReport{ProfitLoss: metrics.ProfitOrLoss(800, 1000)})
	if !strings.HasPrefix(loss, iconBad) || !strings.Contains(loss, "$200.00") {
		t.Errorf("loss: %s", loss)
	}

	roi := metrics.ROI(0, 500)
	if text := renderROI(&roi); !strings.HasPrefix(text, iconBad) || !strings.Contains(text, "-100.00%") {
		t.Errorf("negative ROI: %s", text)
	}

	vel := metrics.AverageVelocity(100, 10)
	if text := renderVelocity(&vel); !strings.Contains(text, "30 days: 300.00 units") {
		t.Errorf("velocity: %s", text)
	}
}

func TestRenderInfoFormRoundTrip(t *testing.T) {
	loc := entity.NewLocation("Bangkok")
	loc.Products["Apple"] = entity.Product{Cost: 1.5, Price: 2.5, Dimension: 0.01, ShelfLifeDays: 7}
	loc.CustomerSegments["Adult"] = 12
	ws := &entity.Workspace{Products: []string{"Apple"}, Customers: []string{"Adult"}}

	text := renderInfoForm(&loc, ws)
	if !strings.Contains(text, "not applied yet") {
		t.Errorf("missing applied hint: %s", text)
	}

	// the listed lines are valid /info input
	lines := text[strings.Index(text, "area="):]
	form, err := parseInfoForm(lines, usecase.FormFromLocation(entity.NewLocation("Bangkok"), *ws), ws.Products, ws.Customers)
	if err != nil {
		t.Fatalf("form does not parse back: %v", err)
	}
	apple := form.Products["Apple"]
	apple.Name = ""
	if apple != loc.Products["Apple"] || form.CustomerSegments["Adult"] != 12 {
		t.Errorf("round trip lost values: %+v", form)
	}
}

func TestRenderOverview(t *testing.T) {
	applied := entity.NewLocation("Jakarta")
	applied.Applied = true
	applied.Products["Apple"] = entity.Product{Cost: 1}
	pending := entity.NewLocation("Bangkok")

	text := renderOverview([]entity.Location{pending, applied})
	if !strings.Contains(text, iconWarning+" Bangkok: not applied") {
		t.Errorf("pending location: %s", text)
	}
	if !strings.Contains(text, iconOK+" Jakarta: 50.00 m2, 1 products") {
		t.Errorf("applied location: %s", text)
	}
	if renderOverview(nil) == "" {
		t.Error("empty overview should still say something")
	}
}

func TestUserMessage(t *testing.T) {
	if msg := userMessage(fmt.Errorf("Jakarta: %w", usecase.ErrLocationNotApplied)); !strings.HasPrefix(msg, iconWarning) {
		t.Errorf("not applied: %s", msg)
	}
	if msg := userMessage(usecase.ErrInvalidQuantity); !strings.Contains(msg, "50000") {
		t.Errorf("invalid quantity should list options: %s", msg)
	}
	if msg := userMessage(fmt.Errorf("boom")); !strings.HasPrefix(msg, iconBad) {
		t.Errorf("generic: %s", msg)
	}
}
