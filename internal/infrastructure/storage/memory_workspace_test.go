package storage

import (
	"context"
	"testing"

	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
)

func TestMemoryWorkspaceDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryWorkspaceRepository()

	ws, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if ws.Selected != entity.DefaultLocations[0] || len(ws.Products) != len(entity.DefaultProducts) {
		t.Errorf("unexpected defaults: %+v", ws)
	}

	ws.Locations = []string{"Tokyo"}
	ws.Selected = "Tokyo"
	if err := repo.Save(ctx, *ws); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.Get(ctx, 42)
	if got.Selected != "Tokyo" || !got.HasLocation("Tokyo") || got.HasLocation("Jakarta") {
		t.Errorf("workspace not saved: %+v", got)
	}

	if err := repo.Delete(ctx, 42); err != nil {
		t.Fatal(err)
	}
	fresh, _ := repo.Get(ctx, 42)
	if fresh.Selected != entity.DefaultLocations[0] {
		t.Errorf("expected defaults after delete, got %+v", fresh)
	}
}
