package metrics

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCapacityPercentage(t *testing.T) {
	tests := []struct {
		name    string
		dims    []float64
		qty     []float64
		area    float64
		percent float64
		over    bool
		defined bool
	}{
		{"half full", []float64{0.01, 0.02}, []float64{1000, 500}, 40, 50, false, true},
		{"exactly full", []float64{0.5}, []float64{100}, 50, 100, false, true},
		{"over capacity is not clamped", []float64{0.01}, []float64{12000}, 50, 240, true, true},
		{"zero quantities", []float64{0.3, 0.2}, []float64{0, 0}, 50, 0, false, true},
		{"zero area", []float64{0.01}, []float64{1000}, 0, 0, false, false},
		{"mismatched inputs", []float64{0.01}, []float64{1000, 1}, 50, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapacityPercentage(tt.dims, tt.qty, tt.area)
			if got.Defined != tt.defined {
				t.Fatalf("Defined = %v, want %v", got.Defined, tt.defined)
			}
			if !almostEqual(got.Percent, tt.percent) {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.percent)
			}
			if got.Over != tt.over {
				t.Errorf("Over = %v, want %v", got.Over, tt.over)
			}
		})
	}
}

func TestCapacityPercentageScaling(t *testing.T) {
	dims := []float64{0.0125, 0.004, 0.02}
	qty := []float64{1000, 3000, 5000}
	base := CapacityPercentage(dims, qty, 80)

	doubled := CapacityPercentage(dims, []float64{2000, 6000, 10000}, 80)
	if !almostEqual(doubled.Percent, 2*base.Percent) {
		t.Errorf("doubling quantities: got %v, want %v", doubled.Percent, 2*base.Percent)
	}

	wider := CapacityPercentage(dims, qty, 160)
	if !almostEqual(wider.Percent, base.Percent/2) {
		t.Errorf("doubling area: got %v, want %v", wider.Percent, base.Percent/2)
	}
}

func TestBreakEvenPrice(t *testing.T) {
	b := BreakEvenPrice(12000, 3000, 1500, 8000)
	if !b.Defined {
		t.Fatal("expected a defined break-even price")
	}
	if !almostEqual(b.TotalCost, 16500) {
		t.Errorf("TotalCost = %v, want 16500", b.TotalCost)
	}
	if !almostEqual(b.Price*b.Units, b.TotalCost) {
		t.Errorf("price × units = %v, want %v", b.Price*b.Units, b.TotalCost)
	}

	zero := BreakEvenPrice(100, 0, 0, 0)
	if zero.Defined {
		t.Error("zero units must be undefined")
	}
	if !almostEqual(zero.TotalCost, 100) {
		t.Errorf("TotalCost should still be reported, got %v", zero.TotalCost)
	}
}

func TestProfitOrLoss(t *testing.T) {
	p := ProfitOrLoss(1000, 800)
	if !p.IsProfit() || p.Label != LabelProfit || !almostEqual(p.Amount, 200) {
		t.Errorf("ProfitOrLoss(1000, 800) = %+v", p)
	}

	l := ProfitOrLoss(800, 1000)
	if l.IsProfit() || l.Label != LabelLoss || !almostEqual(l.Amount, 200) || !almostEqual(l.Net, -200) {
		t.Errorf("ProfitOrLoss(800, 1000) = %+v", l)
	}

	even := ProfitOrLoss(500, 500)
	if even.Label != LabelLoss || even.Amount != 0 {
		t.Errorf("ProfitOrLoss(500, 500) = %+v", even)
	}
}

func TestROI(t *testing.T) {
	for _, inv := range []float64{1, 250, 9999.5} {
		r := ROI(0, inv)
		if !r.Defined || !almostEqual(r.Percent, -100) {
			t.Errorf("ROI(0, %v) = %+v, want -100%%", inv, r)
		}
	}

	r := ROI(1500, 1000)
	if !almostEqual(r.Ratio, 0.5) || !almostEqual(r.Percent, 50) {
		t.Errorf("ROI(1500, 1000) = %+v", r)
	}

	if ROI(100, 0).Defined {
		t.Error("zero investment must be undefined")
	}
}

func TestPercentageChange(t *testing.T) {
	c := PercentageChange(100, 150)
	if !c.Defined || !almostEqual(c.Percent, 50) || !c.Improved() {
		t.Errorf("PercentageChange(100, 150) = %+v", c)
	}

	down := PercentageChange(200, 150)
	if !almostEqual(down.Percent, -25) || down.Improved() {
		t.Errorf("PercentageChange(200, 150) = %+v", down)
	}

	undefined := PercentageChange(0, 50)
	if undefined.Defined || undefined.Improved() {
		t.Errorf("PercentageChange(0, 50) = %+v, want undefined", undefined)
	}
}

func TestAverageVelocity(t *testing.T) {
	v := AverageVelocity(100, 10)
	if !v.Defined || !almostEqual(v.PerDay, 10) {
		t.Fatalf("AverageVelocity(100, 10) = %+v", v)
	}
	if len(v.Projections) != len(ProjectionHorizons) {
		t.Fatalf("got %d projections, want %d", len(v.Projections), len(ProjectionHorizons))
	}
	want := map[int]float64{3: 30, 5: 50, 7: 70, 14: 140, 30: 300}
	for _, p := range v.Projections {
		if !almostEqual(p.Units, want[p.Days]) {
			t.Errorf("%d-day projection = %v, want %v", p.Days, p.Units, want[p.Days])
		}
	}

	if AverageVelocity(100, 0).Defined {
		t.Error("zero days must be undefined")
	}
}

func TestVelocityFromSeries(t *testing.T) {
	v := VelocityFromSeries([]float64{8, 12, 10})
	if !v.Defined || !almostEqual(v.PerDay, 10) {
		t.Errorf("VelocityFromSeries = %+v", v)
	}
	if VelocityFromSeries(nil).Defined {
		t.Error("empty series must be undefined")
	}
}

func TestCompositionHelpers(t *testing.T) {
	qty := []float64{1000, 3000}
	if got := PurchaseCost([]float64{1.5, 2}, qty); !almostEqual(got, 7500) {
		t.Errorf("PurchaseCost = %v", got)
	}
	if got := Revenue([]float64{3, 4}, qty); !almostEqual(got, 15000) {
		t.Errorf("Revenue = %v", got)
	}
	if got := PeriodCost(120, RentalPeriodDays); !almostEqual(got, 3600) {
		t.Errorf("PeriodCost = %v", got)
	}
	if got := TotalUnits(qty); !almostEqual(got, 4000) {
		t.Errorf("TotalUnits = %v", got)
	}
	if got := TotalUnits(nil); got != 0 {
		t.Errorf("TotalUnits(nil) = %v", got)
	}
	if !IsQuantityOption(12000) || IsQuantityOption(1234) {
		t.Error("IsQuantityOption mismatch")
	}
}
