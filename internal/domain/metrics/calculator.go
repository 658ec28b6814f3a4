package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// QuantityOptions planned stock counts offered by the planning forms.
var QuantityOptions = []int{1000, 3000, 5000, 8000, 12000, 20000, 30000, 40000, 50000}

// ProjectionHorizons days over which a sales velocity is projected.
var ProjectionHorizons = []int{3, 5, 7, 14, 30}

const (
	// RentalPeriodDays rental billing period used by the price strategy forms
	RentalPeriodDays = 30
	// MarketingPeriodDays marketing billing period used by the price strategy forms
	MarketingPeriodDays = 30

	LabelProfit = "profit"
	LabelLoss   = "loss"
)

// Capacity floor space consumed by planned stock
type Capacity struct {
	UsedArea float64
	Area     float64
	Percent  float64
	Over     bool
	Defined  bool
}

// BreakEven per-unit price covering every cost
type BreakEven struct {
	TotalCost float64
	Units     float64
	Price     float64
	Defined   bool
}

// ProfitLoss revenue against cost
type ProfitLoss struct {
	Revenue float64
	Cost    float64
	Net     float64
	Amount  float64
	Label   string
}

// IsProfit true when revenue strictly exceeds cost
func (p ProfitLoss) IsProfit() bool {
	return p.Label == LabelProfit
}

// Return return on a marketing investment
type Return struct {
	AdditionalRevenue float64
	Investment        float64
	Ratio             float64
	Percent           float64
	Defined           bool
}

// Change relative change between two observations of one variable
type Change struct {
	Before  float64
	After   float64
	Percent float64
	Defined bool
}

// Improved true when the change is defined and positive
func (c Change) Improved() bool {
	return c.Defined && c.Percent > 0
}

// Projection units expected to sell over a horizon
type Projection struct {
	Days  int
	Units float64
}

// Velocity average units sold per day and its projections
type Velocity struct {
	PerDay      float64
	Projections []Projection
	Defined     bool
}

// CapacityPercentage Σ(dim·qty) / area × 100. Over-capacity is flagged, never clamped.
func CapacityPercentage(dimensions, quantities []float64, area float64) Capacity {
	c := Capacity{Area: area}
	if area <= 0 || len(dimensions) != len(quantities) {
		return c
	}

	for i, dim := range dimensions {
		c.UsedArea += dim * quantities[i]
	}
	c.Percent = c.UsedArea / area * 100
	c.Over = c.Percent > 100
	c.Defined = true
	return c
}

// BreakEvenPrice sum of costs divided by units; undefined when no units are planned.
func BreakEvenPrice(purchase, rental, marketing, units float64) BreakEven {
	b := BreakEven{
		TotalCost: purchase + rental + marketing,
		Units:     units,
	}
	if units == 0 {
		return b
	}
	b.Price = b.TotalCost / units
	b.Defined = true
	return b
}

// ProfitOrLoss revenue − cost, labelled by sign.
func ProfitOrLoss(revenue, cost float64) ProfitLoss {
	p := ProfitLoss{
		Revenue: revenue,
		Cost:    cost,
		Net:     revenue - cost,
		Label:   LabelLoss,
	}
	if revenue > cost {
		p.Label = LabelProfit
	}
	p.Amount = math.Abs(p.Net)
	return p
}

// ROI (additional revenue − investment) / investment; undefined for a zero investment.
func ROI(additionalRevenue, investment float64) Return {
	r := Return{
		AdditionalRevenue: additionalRevenue,
		Investment:        investment,
	}
	if investment == 0 {
		return r
	}
	r.Ratio = (additionalRevenue - investment) / investment
	r.Percent = r.Ratio * 100
	r.Defined = true
	return r
}

// PercentageChange (after − before) / before × 100; undefined when before is zero.
func PercentageChange(before, after float64) Change {
	c := Change{Before: before, After: after}
	if before == 0 {
		return c
	}
	c.Percent = (after - before) / before * 100
	c.Defined = true
	return c
}

// AverageVelocity units sold per day, projected over ProjectionHorizons.
func AverageVelocity(unitsSold, days float64) Velocity {
	if days == 0 {
		return Velocity{}
	}
	return project(unitsSold / days)
}

// VelocityFromSeries mean of daily sales figures, projected over ProjectionHorizons.
func VelocityFromSeries(daily []float64) Velocity {
	if len(daily) == 0 {
		return Velocity{}
	}
	mean, err := stats.Mean(daily)
	if err != nil {
		return Velocity{}
	}
	return project(mean)
}

func project(perDay float64) Velocity {
	v := Velocity{
		PerDay:      perDay,
		Projections: make([]Projection, 0, len(ProjectionHorizons)),
		Defined:     true,
	}
	for _, days := range ProjectionHorizons {
		v.Projections = append(v.Projections, Projection{Days: days, Units: perDay * float64(days)})
	}
	return v
}

// PurchaseCost Σ(cost·qty)
func PurchaseCost(costs, quantities []float64) float64 {
	return dot(costs, quantities)
}

// Revenue Σ(price·qty)
func Revenue(prices, quantities []float64) float64 {
	return dot(prices, quantities)
}

// PeriodCost daily cost over a number of days
func PeriodCost(perDay float64, days int) float64 {
	return perDay * float64(days)
}

// TotalUnits Σqty
func TotalUnits(quantities []float64) float64 {
	total, err := stats.Sum(quantities)
	if err != nil {
		return 0
	}
	return total
}

// IsQuantityOption checks a planned count against QuantityOptions
func IsQuantityOption(qty int) bool {
	for _, opt := range QuantityOptions {
		if opt == qty {
			return true
		}
	}
	return false
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
