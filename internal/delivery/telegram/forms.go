package telegram

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/yourusername/retail-sim-bot/internal/usecase"
)

var errEmptyForm = errors.New("nothing to read, see /help for the form syntax")

// splitFields separates form entries: one per line or ';' when present, otherwise whitespace
func splitFields(args string) []string {
	if strings.ContainsAny(args, "\n;") {
		parts := strings.FieldsFunc(args, func(r rune) bool { return r == '\n' || r == ';' })
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(args)
}

// parseAssignments reads key=value entries, keys keep their original case
func parseAssignments(args string) ([][2]string, error) {
	fields := splitFields(args)
	if len(fields) == 0 {
		return nil, errEmptyForm
	}

	pairs := make([][2]string, 0, len(fields))
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("%q is not a key=value entry", f)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

// splitNames comma separated list of the sidebar editors
func splitNames(args string) []string {
	return usecase.CleanNames(strings.Split(args, ","))
}

// parseNumber accepts "1,500", "$20" and plain numbers
func parseNumber(raw string) (float64, error) {
	s := strings.NewReplacer(",", "", "$", "", "%", "").Replace(strings.TrimSpace(raw))
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

func parseCount(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q must be a whole number", raw)
	}
	if math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return cast.ToInt(v), nil
}

// matchName case-insensitive lookup in the workspace list
func matchName(list []string, name string) (string, bool) {
	for _, n := range list {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// parseInfoForm applies "/info" entries on top of the prefilled form
func parseInfoForm(args string, form usecase.LocationInput, products, customers []string) (usecase.LocationInput, error) {
	pairs, err := parseAssignments(args)
	if err != nil {
		return form, err
	}

	for _, kv := range pairs {
		key, raw := kv[0], kv[1]
		field, name, scoped := strings.Cut(key, ".")
		field = strings.ToLower(field)

		if !scoped {
			v, err := parseNumber(raw)
			if err != nil {
				return form, fmt.Errorf("%s: %w", key, err)
			}
			switch field {
			case "area":
				form.Area = v
			case "rent":
				form.RentalCost = v
			case "overflow":
				form.OverflowFee = v
			default:
				return form, fmt.Errorf("unknown field %q", key)
			}
			continue
		}

		if field == "seg" {
			segment, ok := matchName(customers, name)
			if !ok {
				return form, fmt.Errorf("unknown customer segment %q", name)
			}
			count, err := parseCount(raw)
			if err != nil {
				return form, fmt.Errorf("%s: %w", key, err)
			}
			form.CustomerSegments[segment] = count
			continue
		}

		product, ok := matchName(products, name)
		if !ok {
			return form, fmt.Errorf("%s: %w", name, usecase.ErrUnknownProduct)
		}
		p := form.Products[product]
		switch field {
		case "exp":
			days, err := parseCount(raw)
			if err != nil {
				return form, fmt.Errorf("%s: %w", key, err)
			}
			p.ShelfLifeDays = days
		case "cost", "sell", "dim":
			v, err := parseNumber(raw)
			if err != nil {
				return form, fmt.Errorf("%s: %w", key, err)
			}
			switch field {
			case "cost":
				p.Cost = v
			case "sell":
				p.Price = v
			default:
				p.Dimension = v
			}
		default:
			return form, fmt.Errorf("unknown field %q", key)
		}
		form.Products[product] = p
	}
	return form, nil
}

// parsePlan reads "marketing=..", "<Product>=<units>" and "sell.<Product>=.."
func parsePlan(args string, products []string) (usecase.PlanInput, error) {
	plan := usecase.PlanInput{
		Quantities: make(map[string]int),
		SellPrices: make(map[string]float64),
	}
	if strings.TrimSpace(args) == "" {
		return plan, nil
	}

	pairs, err := parseAssignments(args)
	if err != nil {
		return plan, err
	}

	for _, kv := range pairs {
		key, raw := kv[0], kv[1]

		if strings.EqualFold(key, "marketing") {
			v, err := parseNumber(raw)
			if err != nil {
				return plan, fmt.Errorf("marketing: %w", err)
			}
			plan.MarketingPerDay = v
			continue
		}

		if field, name, ok := strings.Cut(key, "."); ok && strings.EqualFold(field, "sell") {
			product, found := matchName(products, name)
			if !found {
				return plan, fmt.Errorf("%s: %w", name, usecase.ErrUnknownProduct)
			}
			v, err := parseNumber(raw)
			if err != nil {
				return plan, fmt.Errorf("%s: %w", key, err)
			}
			plan.SellPrices[product] = v
			continue
		}

		product, found := matchName(products, key)
		if !found {
			return plan, fmt.Errorf("%s: %w", key, usecase.ErrUnknownProduct)
		}
		qty, err := parseCount(raw)
		if err != nil {
			return plan, fmt.Errorf("%s: %w", key, err)
		}
		plan.Quantities[product] = qty
	}
	return plan, nil
}

// parseCompare "<variable>|<before>|<after>"
func parseCompare(args string) (string, float64, float64, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 3 {
		return "", 0, 0, errors.New("usage: /compare <variable>|<before>|<after>")
	}
	before, err := parseNumber(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("before: %w", err)
	}
	after, err := parseNumber(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("after: %w", err)
	}
	return strings.TrimSpace(parts[0]), before, after, nil
}

// parsePair two whitespace separated numbers
func parsePair(args, usage string) (float64, float64, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, 0, errors.New(usage)
	}
	a, err := parseNumber(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseNumber(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseSeries comma separated daily sales
func parseSeries(args string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(args, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parseNumber(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errEmptyForm
	}
	return out, nil
}

// parseVelocity "<units> <days>" (thousands separators allowed) or a comma separated daily series
func parseVelocity(args string) (units, days float64, daily []float64, err error) {
	fields := strings.Fields(args)
	if len(fields) == 2 && !strings.HasSuffix(fields[0], ",") && !strings.HasPrefix(fields[1], ",") {
		units, days, err = parsePair(args, velocityUsage)
		return units, days, nil, err
	}
	if !strings.Contains(args, ",") {
		return 0, 0, nil, errors.New(velocityUsage)
	}
	daily, err = parseSeries(args)
	return 0, 0, daily, err
}

const velocityUsage = "usage: /velocity <units sold> <days> or /velocity d1,d2,..."
