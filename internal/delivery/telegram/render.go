package telegram

import (
	"fmt"
	"strings"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/metrics"
	"github.com/yourusername/retail-sim-bot/internal/usecase"
)

const (
	iconOK      = "✅"
	iconBad     = "❌"
	iconWarning = "⚠️"
)

func renderWorkspace(ws *entity.Workspace) string {
	return fmt.Sprintf("📍 Locations: %s\n🍎 Products: %s\n👥 Customers: %s\n\nSelected location: %s",
		strings.Join(ws.Locations, ", "),
		strings.Join(ws.Products, ", "),
		strings.Join(ws.Customers, ", "),
		ws.Selected)
}

// renderInfoForm current values of the "/info" form, ready to copy and edit
func renderInfoForm(loc *entity.Location, ws *entity.Workspace) string {
	form := usecase.FormFromLocation(*loc, *ws)

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Retail information for %s", loc.Name)
	if !loc.Applied {
		b.WriteString(" (not applied yet)")
	}
	b.WriteString("\n\nSend /info followed by the fields to change, one per line:\n\n")
	fmt.Fprintf(&b, "area=%v\nrent=%v\noverflow=%v\n", form.Area, form.RentalCost, form.OverflowFee)
	for _, name := range ws.Products {
		p := form.Products[name]
		fmt.Fprintf(&b, "cost.%s=%v\nsell.%s=%v\ndim.%s=%v\nexp.%s=%d\n",
			name, p.Cost, name, p.Price, name, p.Dimension, name, p.ShelfLifeDays)
	}
	for _, segment := range ws.Customers {
		fmt.Fprintf(&b, "seg.%s=%d\n", segment, form.CustomerSegments[segment])
	}
	return b.String()
}

// renderOverview one line per referenced location
func renderOverview(locations []entity.Location) string {
	if len(locations) == 0 {
		return "No location has been opened yet, /select one."
	}
	var b strings.Builder
	b.WriteString("🗺 Locations:\n")
	for _, loc := range locations {
		icon := iconWarning
		state := "not applied"
		if loc.Applied {
			icon = iconOK
			state = fmt.Sprintf("%s m2, %d products", usecase.Number(loc.Area), len(loc.Products))
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, loc.Name, state)
	}
	return b.String()
}

func renderCapacity(r *usecase.CapacityReport) string {
	if !r.Defined {
		return fmt.Sprintf("%s Capacity of %s cannot be computed: the store area is zero.", iconWarning, r.Location)
	}
	text := fmt.Sprintf("Stock needs %s m2 of %s m2 in %s.\nCapacity: %s%%",
		usecase.Number(r.UsedArea), usecase.Number(r.Area), r.Location, usecase.Number(r.Percent))
	if r.Over {
		return fmt.Sprintf("%s Over capacity!\n%s", iconBad, text)
	}
	return fmt.Sprintf("%s Within capacity.\n%s", iconOK, text)
}

func renderBreakEven(r *usecase.BreakEvenReport) string {
	costs := fmt.Sprintf("Purchase: %s\nRental (%d days): %s\nMarketing (%d days): %s\nTotal cost: %s",
		usecase.Money(r.Purchase),
		metrics.RentalPeriodDays, usecase.Money(r.Rental),
		metrics.MarketingPeriodDays, usecase.Money(r.Marketing),
		usecase.Money(r.TotalCost))
	if !r.Defined {
		return fmt.Sprintf("%s Break-even price cannot be computed with zero planned units.\n\n%s", iconWarning, costs)
	}
	return fmt.Sprintf("%s Break-even price in %s: %s per unit over %s units.\n\n%s",
		iconOK, r.Location, usecase.Money(r.Price), usecase.Number(r.Units), costs)
}

func renderSellingPrice(r *usecase.SellingPriceReport) string {
	text := fmt.Sprintf("Revenue: %s\nCost: %s", usecase.Money(r.Revenue), usecase.Money(r.Cost))
	if r.IsProfit() {
		return fmt.Sprintf("%s Profit of %s in %s.\n%s", iconOK, usecase.Money(r.Amount), r.Location, text)
	}
	return fmt.Sprintf("%s Loss of %s in %s.\n%s", iconBad, usecase.Money(r.Amount), r.Location, text)
}

func renderChange(r *usecase.ChangeReport) string {
	if !r.Defined {
		return fmt.Sprintf("%s %s: percentage change is not defined when the 'before' value is zero.", iconWarning, r.Variable)
	}
	icon := iconBad
	if r.Improved() {
		icon = iconOK
	}
	return fmt.Sprintf("%s %s changed by %.2f%% (from %v to %v).", icon, r.Variable, r.Percent, r.Before, r.After)
}

func renderROI(r *metrics.Return) string {
	if !r.Defined {
		return fmt.Sprintf("%s ROI is not defined without a marketing investment.", iconWarning)
	}
	icon := iconBad
	if r.Percent > 0 {
		icon = iconOK
	}
	return fmt.Sprintf("%s ROI: %.2f%% (ratio %.4f)\nAdditional revenue: %s\nInvestment: %s",
		icon, r.Percent, r.Ratio, usecase.Money(r.AdditionalRevenue), usecase.Money(r.Investment))
}

func renderVelocity(v *metrics.Velocity) string {
	if !v.Defined {
		return fmt.Sprintf("%s Sales velocity needs at least one day of sales.", iconWarning)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Average sales velocity: %s units/day\n\nProjected sales:\n", iconOK, usecase.Number(v.PerDay))
	for _, p := range v.Projections {
		fmt.Fprintf(&b, "• %d days: %s units\n", p.Days, usecase.Number(p.Units))
	}
	return b.String()
}

func renderHistory(calcs []entity.Calculation) string {
	if len(calcs) == 0 {
		return "No calculations yet."
	}
	var b strings.Builder
	b.WriteString("📊 Recent calculations:\n\n")
	for _, c := range calcs {
		icon := iconOK
		if !c.Defined {
			icon = iconWarning
		}
		fmt.Fprintf(&b, "%s %s [%s] %s\n", icon, c.Timestamp.Format("01-02 15:04"), c.Location, c.Summary)
	}
	return b.String()
}

func quantityOptionsText() string {
	opts := make([]string, len(metrics.QuantityOptions))
	for i, q := range metrics.QuantityOptions {
		opts[i] = fmt.Sprint(q)
	}
	return strings.Join(opts, ", ")
}
