package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/metrics"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
	"go.uber.org/zap"
)

// BeforeAfterVariables variables offered by the before/after comparison
var BeforeAfterVariables = []string{"Number Of Sales", "Revenue", "Average Order Value", "Conversion Rate"}

// PlanInput planned stock and marketing spend of the price strategy forms
type PlanInput struct {
	Quantities      map[string]int     // product → planned units, missing products use the first option
	MarketingPerDay float64            // marketing cost per day
	SellPrices      map[string]float64 // overrides of the catalog sell price
}

// CapacityReport capacity planning result
type CapacityReport struct {
	Location string
	metrics.Capacity
}

// BreakEvenReport break-even price with the cost breakdown behind it
type BreakEvenReport struct {
	Location  string
	Purchase  float64
	Rental    float64
	Marketing float64
	metrics.BreakEven
}

// SellingPriceReport initial selling price evaluation
type SellingPriceReport struct {
	Location string
	metrics.ProfitLoss
}

// ChangeReport before/after comparison of one variable
type ChangeReport struct {
	Location string
	Variable string
	metrics.Change
}

// MetricsUseCase computes retail metrics from the active location
type MetricsUseCase interface {
	Capacity(ctx context.Context, userID int64, quantities map[string]int) (*CapacityReport, error)
	BreakEven(ctx context.Context, userID int64, plan PlanInput) (*BreakEvenReport, error)
	InitialSellingPrice(ctx context.Context, userID int64, plan PlanInput) (*SellingPriceReport, error)
	BeforeAfter(ctx context.Context, userID int64, variable string, before, after float64) (*ChangeReport, error)
	ROI(ctx context.Context, userID int64, additionalRevenue, investment float64) (*metrics.Return, error)
	Velocity(ctx context.Context, userID int64, unitsSold, days float64) (*metrics.Velocity, error)
	VelocitySeries(ctx context.Context, userID int64, daily []float64) (*metrics.Velocity, error)
	History(ctx context.Context, userID int64, limit int) ([]entity.Calculation, error)
	ClearHistory(ctx context.Context, userID int64) error
}

type metricsUseCase struct {
	locations LocationUseCase
	calcRepo  repository.CalculationRepository
}

// NewMetricsUseCase creates a MetricsUseCase
func NewMetricsUseCase(locations LocationUseCase, calcRepo repository.CalculationRepository) MetricsUseCase {
	return &metricsUseCase{
		locations: locations,
		calcRepo:  calcRepo,
	}
}

func (u *metricsUseCase) Capacity(ctx context.Context, userID int64, quantities map[string]int) (*CapacityReport, error) {
	loc, ws, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	qty, err := plannedQuantities(ws.Products, quantities)
	if err != nil {
		return nil, err
	}

	dims := make([]float64, len(ws.Products))
	for i, name := range ws.Products {
		dims[i] = loc.Product(name).Dimension
	}

	report := &CapacityReport{
		Location: loc.Name,
		Capacity: metrics.CapacityPercentage(dims, qty, loc.Area),
	}

	summary := fmt.Sprintf("Capacity %s%% (%s of %s m2)", Number(report.Percent), Number(report.UsedArea), Number(loc.Area))
	if !report.Defined {
		summary = "Capacity with zero store area"
	}
	u.record(ctx, userID, loc.Name, entity.KindCapacity, summary, report.Percent, report.Defined)

	return report, nil
}

func (u *metricsUseCase) BreakEven(ctx context.Context, userID int64, plan PlanInput) (*BreakEvenReport, error) {
	loc, ws, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("marketing cost", plan.MarketingPerDay); err != nil {
		return nil, err
	}

	qty, err := plannedQuantities(ws.Products, plan.Quantities)
	if err != nil {
		return nil, err
	}

	costs := make([]float64, len(ws.Products))
	for i, name := range ws.Products {
		costs[i] = loc.Product(name).Cost
	}

	report := &BreakEvenReport{
		Location:  loc.Name,
		Purchase:  metrics.PurchaseCost(costs, qty),
		Rental:    metrics.PeriodCost(loc.RentalCost, metrics.RentalPeriodDays),
		Marketing: metrics.PeriodCost(plan.MarketingPerDay, metrics.MarketingPeriodDays),
	}
	report.BreakEven = metrics.BreakEvenPrice(report.Purchase, report.Rental, report.Marketing, metrics.TotalUnits(qty))

	summary := fmt.Sprintf("Break-even price %s per unit (total cost %s)", Money(report.Price), Money(report.TotalCost))
	if !report.Defined {
		summary = fmt.Sprintf("Break-even price with zero units (total cost %s)", Money(report.TotalCost))
	}
	u.record(ctx, userID, loc.Name, entity.KindBreakEven, summary, report.Price, report.Defined)

	return report, nil
}

func (u *metricsUseCase) InitialSellingPrice(ctx context.Context, userID int64, plan PlanInput) (*SellingPriceReport, error) {
	loc, ws, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("marketing cost", plan.MarketingPerDay); err != nil {
		return nil, err
	}

	qty, err := plannedQuantities(ws.Products, plan.Quantities)
	if err != nil {
		return nil, err
	}

	costs := make([]float64, len(ws.Products))
	prices := make([]float64, len(ws.Products))
	for i, name := range ws.Products {
		p := loc.Product(name)
		costs[i] = p.Cost
		prices[i] = p.Price
	}
	for name, price := range plan.SellPrices {
		idx := indexOf(ws.Products, name)
		if idx < 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownProduct)
		}
		if err := checkAmounts("sell price of "+name, price); err != nil {
			return nil, err
		}
		prices[idx] = price
	}

	revenue := metrics.Revenue(prices, qty)
	cost := metrics.PurchaseCost(costs, qty) +
		metrics.PeriodCost(loc.RentalCost, metrics.RentalPeriodDays) +
		metrics.PeriodCost(plan.MarketingPerDay, metrics.MarketingPeriodDays)

	report := &SellingPriceReport{
		Location:   loc.Name,
		ProfitLoss: metrics.ProfitOrLoss(revenue, cost),
	}

	summary := fmt.Sprintf("Revenue %s, cost %s, %s %s", Money(revenue), Money(cost), report.Label, Money(report.Amount))
	u.record(ctx, userID, loc.Name, entity.KindInitialPrice, summary, report.Net, true)

	return report, nil
}

func (u *metricsUseCase) BeforeAfter(ctx context.Context, userID int64, variable string, before, after float64) (*ChangeReport, error) {
	loc, _, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("before/after values", before, after); err != nil {
		return nil, err
	}

	name, ok := MatchVariable(variable)
	if !ok {
		return nil, fmt.Errorf("unknown variable %q, expected one of: %s", variable, strings.Join(BeforeAfterVariables, ", "))
	}

	report := &ChangeReport{
		Location: loc.Name,
		Variable: name,
		Change:   metrics.PercentageChange(before, after),
	}

	summary := fmt.Sprintf("%s comparison: %.2f%% (from %v to %v)", name, report.Percent, before, after)
	if !report.Defined {
		summary = fmt.Sprintf("%s comparison with a zero 'before' value", name)
	}
	u.record(ctx, userID, loc.Name, entity.KindBeforeAfter, summary, report.Percent, report.Defined)

	return report, nil
}

func (u *metricsUseCase) ROI(ctx context.Context, userID int64, additionalRevenue, investment float64) (*metrics.Return, error) {
	loc, _, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("revenue and investment", additionalRevenue, investment); err != nil {
		return nil, err
	}

	r := metrics.ROI(additionalRevenue, investment)

	summary := fmt.Sprintf("ROI %.2f%% (revenue %s, investment %s)", r.Percent, Money(additionalRevenue), Money(investment))
	if !r.Defined {
		summary = "ROI with zero marketing investment"
	}
	u.record(ctx, userID, loc.Name, entity.KindROI, summary, r.Percent, r.Defined)

	return &r, nil
}

func (u *metricsUseCase) Velocity(ctx context.Context, userID int64, unitsSold, days float64) (*metrics.Velocity, error) {
	loc, _, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("units and days", unitsSold, days); err != nil {
		return nil, err
	}

	v := metrics.AverageVelocity(unitsSold, days)
	u.recordVelocity(ctx, userID, loc.Name, v, fmt.Sprintf("%v units over %v days", unitsSold, days))
	return &v, nil
}

func (u *metricsUseCase) VelocitySeries(ctx context.Context, userID int64, daily []float64) (*metrics.Velocity, error) {
	loc, _, err := u.locations.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAmounts("daily sales", daily...); err != nil {
		return nil, err
	}

	v := metrics.VelocityFromSeries(daily)
	u.recordVelocity(ctx, userID, loc.Name, v, fmt.Sprintf("%d days of sales", len(daily)))
	return &v, nil
}

func (u *metricsUseCase) recordVelocity(ctx context.Context, userID int64, location string, v metrics.Velocity, basis string) {
	summary := fmt.Sprintf("Velocity %s units/day from %s", Number(v.PerDay), basis)
	if !v.Defined {
		summary = fmt.Sprintf("Velocity from %s (no days)", basis)
	}
	u.record(ctx, userID, location, entity.KindVelocity, summary, v.PerDay, v.Defined)
}

func (u *metricsUseCase) History(ctx context.Context, userID int64, limit int) ([]entity.Calculation, error) {
	return u.calcRepo.GetHistory(ctx, userID, limit)
}

func (u *metricsUseCase) ClearHistory(ctx context.Context, userID int64) error {
	if err := u.calcRepo.ClearHistory(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// record history is best effort, a failed write never fails the calculation
func (u *metricsUseCase) record(ctx context.Context, userID int64, location, kind, summary string, value float64, defined bool) {
	calc := entity.Calculation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Location:  location,
		Kind:      kind,
		Summary:   summary,
		Value:     value,
		Defined:   defined,
		Timestamp: time.Now(),
	}
	if err := u.calcRepo.Save(ctx, calc); err != nil {
		zap.S().Warnf("failed to save calculation: %v", err)
	}
}

// plannedQuantities aligns planned units with the product list
func plannedQuantities(products []string, quantities map[string]int) ([]float64, error) {
	for name := range quantities {
		if indexOf(products, name) < 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownProduct)
		}
	}

	out := make([]float64, len(products))
	for i, name := range products {
		qty, ok := quantities[name]
		if !ok {
			qty = metrics.QuantityOptions[0]
		}
		if !metrics.IsQuantityOption(qty) {
			return nil, fmt.Errorf("%s = %d: %w", name, qty, ErrInvalidQuantity)
		}
		out[i] = float64(qty)
	}
	return out, nil
}

// MatchVariable case-insensitive lookup in BeforeAfterVariables
func MatchVariable(variable string) (string, bool) {
	v := strings.TrimSpace(variable)
	for _, name := range BeforeAfterVariables {
		if strings.EqualFold(name, v) {
			return name, true
		}
	}
	return "", false
}

func indexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	return -1
}
