package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
	"go.uber.org/zap"
)

// LocationInput the "Apply Information" form of one location
type LocationInput struct {
	Area             float64
	RentalCost       float64
	OverflowFee      float64
	Products         map[string]entity.Product
	CustomerSegments map[string]int
}

// Validate every numeric field is finite and non-negative
func (in LocationInput) Validate() error {
	if !allFinite(in.Area, in.RentalCost, in.OverflowFee) {
		return fmt.Errorf("store area, rental cost and overflow fee: %w", ErrNotFinite)
	}
	if in.Area < 0 || in.RentalCost < 0 || in.OverflowFee < 0 {
		return fmt.Errorf("store area, rental cost and overflow fee: %w", ErrNegativeInput)
	}
	for name, p := range in.Products {
		if !allFinite(p.Cost, p.Price, p.Dimension) {
			return fmt.Errorf("product %s: %w", name, ErrNotFinite)
		}
		if p.Cost < 0 || p.Price < 0 || p.Dimension < 0 || p.ShelfLifeDays < 0 {
			return fmt.Errorf("product %s: %w", name, ErrNegativeInput)
		}
	}
	for segment, count := range in.CustomerSegments {
		if count < 0 {
			return fmt.Errorf("customer segment %s: %w", segment, ErrNegativeInput)
		}
	}
	return nil
}

// FormFromLocation prefills the form from the stored record, one entry per listed product and customer
func FormFromLocation(loc entity.Location, ws entity.Workspace) LocationInput {
	in := LocationInput{
		Area:             loc.Area,
		RentalCost:       loc.RentalCost,
		OverflowFee:      loc.OverflowFee,
		Products:         make(map[string]entity.Product, len(ws.Products)),
		CustomerSegments: make(map[string]int, len(ws.Customers)),
	}
	for _, name := range ws.Products {
		in.Products[name] = loc.Product(name)
	}
	for _, segment := range ws.Customers {
		in.CustomerSegments[segment] = loc.CustomerSegments[segment]
	}
	return in
}

// LocationUseCase session data of the sidebar and the retail information form
type LocationUseCase interface {
	Workspace(ctx context.Context, userID int64) (*entity.Workspace, error)

	SetLocations(ctx context.Context, userID int64, names []string) (*entity.Workspace, error)
	SetProducts(ctx context.Context, userID int64, names []string) (*entity.Workspace, error)
	SetCustomers(ctx context.Context, userID int64, names []string) (*entity.Workspace, error)

	// SelectLocation switches the active location, creating its record on first reference
	SelectLocation(ctx context.Context, userID int64, name string) (*entity.Location, error)

	// Selected returns the active location record whether or not it was applied
	Selected(ctx context.Context, userID int64) (*entity.Location, *entity.Workspace, error)

	// ApplyInformation replaces the active location's record
	ApplyInformation(ctx context.Context, userID int64, input LocationInput) (*entity.Location, error)

	// Current is the active location once its information has been applied
	Current(ctx context.Context, userID int64) (*entity.Location, *entity.Workspace, error)

	// Snapshot JSON view of the named location, the active one when name is empty
	Snapshot(ctx context.Context, userID int64, name string) (string, error)

	// Overview every location the user has referenced, sorted by name
	Overview(ctx context.Context, userID int64) ([]entity.Location, error)

	// ImportCatalog merges an uploaded catalog into the active location
	ImportCatalog(ctx context.Context, userID int64, data []byte, filename string) (*CatalogImport, error)

	// Reset drops every location record and restores the default lists
	Reset(ctx context.Context, userID int64) error
}

// CatalogImport outcome of a catalog upload
type CatalogImport struct {
	Location string
	Products int // distinct product names read from the file
	Added    int // names that were not in the product list yet
}

type locationUseCase struct {
	locationRepo  repository.LocationRepository
	workspaceRepo repository.WorkspaceRepository
	catalogParser repository.CatalogParser
}

// NewLocationUseCase creates a LocationUseCase
func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	workspaceRepo repository.WorkspaceRepository,
	catalogParser repository.CatalogParser,
) LocationUseCase {
	return &locationUseCase{
		locationRepo:  locationRepo,
		workspaceRepo: workspaceRepo,
		catalogParser: catalogParser,
	}
}

func (u *locationUseCase) Workspace(ctx context.Context, userID int64) (*entity.Workspace, error) {
	return u.workspaceRepo.Get(ctx, userID)
}

// SetLocations keeps the selection when it survives, otherwise selects the first name
func (u *locationUseCase) SetLocations(ctx context.Context, userID int64, names []string) (*entity.Workspace, error) {
	return u.updateList(ctx, userID, names, func(ws *entity.Workspace, list []string) {
		ws.Locations = list
		if !ws.HasLocation(ws.Selected) {
			ws.Selected = list[0]
		}
	})
}

func (u *locationUseCase) SetProducts(ctx context.Context, userID int64, names []string) (*entity.Workspace, error) {
	return u.updateList(ctx, userID, names, func(ws *entity.Workspace, list []string) {
		ws.Products = list
	})
}

func (u *locationUseCase) SetCustomers(ctx context.Context, userID int64, names []string) (*entity.Workspace, error) {
	return u.updateList(ctx, userID, names, func(ws *entity.Workspace, list []string) {
		ws.Customers = list
	})
}

func (u *locationUseCase) updateList(ctx context.Context, userID int64, names []string, apply func(*entity.Workspace, []string)) (*entity.Workspace, error) {
	list := CleanNames(names)
	if len(list) == 0 {
		return nil, ErrEmptyList
	}

	ws, err := u.workspaceRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	apply(ws, list)

	if err := u.workspaceRepo.Save(ctx, *ws); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}
	return ws, nil
}

func (u *locationUseCase) SelectLocation(ctx context.Context, userID int64, name string) (*entity.Location, error) {
	ws, err := u.workspaceRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	name = strings.TrimSpace(name)
	if !ws.HasLocation(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownLocation)
	}

	ws.Selected = name
	if err := u.workspaceRepo.Save(ctx, *ws); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	return u.locationRepo.GetOrCreate(ctx, userID, name)
}

func (u *locationUseCase) Selected(ctx context.Context, userID int64) (*entity.Location, *entity.Workspace, error) {
	ws, err := u.workspaceRepo.Get(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	loc, err := u.locationRepo.GetOrCreate(ctx, userID, ws.Selected)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load location: %w", err)
	}
	return loc, ws, nil
}

func (u *locationUseCase) ApplyInformation(ctx context.Context, userID int64, input LocationInput) (*entity.Location, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, _, err := u.Selected(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := entity.NewLocation(current.Name)
	loc.Area = input.Area
	loc.RentalCost = input.RentalCost
	loc.OverflowFee = input.OverflowFee
	for name, p := range input.Products {
		p.Name = ""
		loc.Products[name] = p
	}
	for segment, count := range input.CustomerSegments {
		loc.CustomerSegments[segment] = count
	}
	loc.Applied = true
	loc.UpdatedAt = time.Now()

	if err := u.locationRepo.Save(ctx, userID, loc); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	zap.S().Infof("information applied: user=%d location=%s products=%d", userID, loc.Name, len(loc.Products))
	return &loc, nil
}

func (u *locationUseCase) Current(ctx context.Context, userID int64) (*entity.Location, *entity.Workspace, error) {
	loc, ws, err := u.Selected(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !loc.Applied {
		return nil, ws, fmt.Errorf("%s: %w", loc.Name, ErrLocationNotApplied)
	}
	return loc, ws, nil
}

func (u *locationUseCase) Snapshot(ctx context.Context, userID int64, name string) (string, error) {
	loc, err := u.snapshotLocation(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(loc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode location: %w", err)
	}
	return string(data), nil
}

func (u *locationUseCase) snapshotLocation(ctx context.Context, userID int64, name string) (*entity.Location, error) {
	if name == "" {
		loc, _, err := u.Current(ctx, userID)
		return loc, err
	}

	ws, err := u.workspaceRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	listed, ok := matchName(ws.Locations, name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownLocation)
	}

	loc, err := u.locationRepo.Get(ctx, userID, listed)
	if err != nil || !loc.Applied {
		return nil, fmt.Errorf("%s: %w", listed, ErrLocationNotApplied)
	}
	return loc, nil
}

func (u *locationUseCase) Overview(ctx context.Context, userID int64) ([]entity.Location, error) {
	locations, err := u.locationRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (u *locationUseCase) Reset(ctx context.Context, userID int64) error {
	if err := u.locationRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear locations: %w", err)
	}
	if err := u.workspaceRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	zap.S().Infof("session reset: user=%d", userID)
	return nil
}

// ImportCatalog matches names case-insensitively against the product list, later rows win
func (u *locationUseCase) ImportCatalog(ctx context.Context, userID int64, data []byte, filename string) (*CatalogImport, error) {
	products, err := u.catalogParser.ParseCatalogFromBytes(ctx, data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products found in %s", filename)
	}

	loc, ws, err := u.Selected(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CatalogImport{Location: loc.Name}
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if !allFinite(p.Cost, p.Price, p.Dimension) || p.Cost < 0 || p.Price < 0 || p.Dimension < 0 || p.ShelfLifeDays < 0 {
			return nil, fmt.Errorf("product %s in %s: %w", p.Name, filename, ErrNotFinite)
		}

		name := strings.TrimSpace(p.Name)
		if listed, ok := matchName(ws.Products, name); ok {
			name = listed
		} else {
			ws.Products = append(ws.Products, name)
			result.Added++
		}
		if !seen[name] {
			seen[name] = true
			result.Products++
		}

		p.Name = ""
		loc.Products[name] = p
	}
	loc.Applied = true
	loc.UpdatedAt = time.Now()

	if err := u.locationRepo.Save(ctx, userID, *loc); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}
	if err := u.workspaceRepo.Save(ctx, *ws); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}

	zap.S().Infof("catalog imported: user=%d location=%s file=%s products=%d added=%d",
		userID, loc.Name, filename, result.Products, result.Added)
	return result, nil
}

// CleanNames trims names and drops empty and duplicate entries, keeping order
func CleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// matchName case-insensitive lookup, returns the listed spelling
func matchName(list []string, name string) (string, bool) {
	for _, n := range list {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// checkAmounts input boundary for numbers the calculator receives
func checkAmounts(label string, values ...float64) error {
	if !allFinite(values...) {
		return fmt.Errorf("%s: %w", label, ErrNotFinite)
	}
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%s: %w", label, ErrNegativeInput)
		}
	}
	return nil
}
