package app

import (
	"errors"
	"testing"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/pkg/grid"
)

func TestCreateGemChargesEnergy(t *testing.T) {
	g := newTestGame(t, testLevelYAML)

	id, err := g.CreateGem(defs.GemGreen, 2)
	if err != nil {
		t.Fatalf("CreateGem failed: %v", err)
	}
	if g.ECS.PlayerState.Energy != 80 {
		t.Errorf("Expected energy 80 after a rank 2 gem, got %d", g.ECS.PlayerState.Energy)
	}
	if got, _ := g.GemAt(InventorySlot(0)); got != id {
		t.Errorf("Expected the gem in slot 0, got %d", got)
	}
	if gem := g.ECS.Gems[id]; gem.Charges != 0 {
		t.Errorf("Green gems carry no charges, got %d", gem.Charges)
	}

	yellow, err := g.CreateGem(defs.GemYellow, 0)
	if err != nil {
		t.Fatalf("CreateGem failed: %v", err)
	}
	if g.ECS.Gems[yellow].Charges != config.MaxCharges {
		t.Errorf("Expected a new Yellow gem at %d charges, got %d", config.MaxCharges, g.ECS.Gems[yellow].Charges)
	}
}

func TestCreateGemRejections(t *testing.T) {
	g := newTestGame(t, testLevelYAML)

	if _, err := g.CreateGem(defs.GemColor(7), 0); !errors.Is(err, ErrInvalidGem) {
		t.Errorf("Expected ErrInvalidGem, got %v", err)
	}
	g.ECS.PlayerState.Energy = 30
	if _, err := g.CreateGem(defs.GemRed, 3); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Errorf("Expected ErrNotEnoughEnergy, got %v", err)
	}
	if g.ECS.PlayerState.Energy != 30 {
		t.Errorf("A rejected gem must not cost energy, got %d", g.ECS.PlayerState.Energy)
	}

	g.ECS.PlayerState.Energy = 1000
	for i := 0; i < config.InventorySlots; i++ {
		if _, err := g.CreateGem(defs.GemRed, 0); err != nil {
			t.Fatalf("CreateGem %d failed: %v", i, err)
		}
	}
	if _, err := g.CreateGem(defs.GemRed, 0); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("Expected ErrInventoryFull, got %v", err)
	}
}

func TestSwapGemsBetweenTowers(t *testing.T) {
	g := newTestGame(t, testLevelYAML)
	a, err := g.BuildTower(grid.Coord{Row: 0, Col: 1})
	if err != nil {
		t.Fatalf("BuildTower failed: %v", err)
	}
	b, err := g.BuildTower(grid.Coord{Row: 0, Col: 4})
	if err != nil {
		t.Fatalf("BuildTower failed: %v", err)
	}
	red, _ := g.CreateGem(defs.GemRed, 0)
	blue, _ := g.CreateGem(defs.GemBlue, 0)

	if err := g.SwapGems(InventorySlot(0), TowerSlot(a)); err != nil {
		t.Fatalf("SwapGems failed: %v", err)
	}
	if g.ECS.Towers[a].GemID != red {
		t.Fatal("Expected red on tower a")
	}
	if got, _ := g.GemAt(InventorySlot(0)); got != 0 {
		t.Errorf("Expected slot 0 to be empty, got %d", got)
	}

	if err := g.SwapGems(InventorySlot(1), TowerSlot(b)); err != nil {
		t.Fatalf("SwapGems failed: %v", err)
	}
	if err := g.SwapGems(TowerSlot(a), TowerSlot(b)); err != nil {
		t.Fatalf("SwapGems failed: %v", err)
	}
	if g.ECS.Towers[a].GemID != blue || g.ECS.Towers[b].GemID != red {
		t.Errorf("Expected the gems to trade places, got a=%d b=%d", g.ECS.Towers[a].GemID, g.ECS.Towers[b].GemID)
	}

	// Забрать самоцвет обратно: башня остаётся пустой и простаивает.
	if err := g.SwapGems(TowerSlot(a), InventorySlot(5)); err != nil {
		t.Fatalf("SwapGems failed: %v", err)
	}
	if g.ECS.Towers[a].GemID != 0 || g.ECS.Towers[a].State != component.TowerIdle {
		t.Errorf("Expected an idle empty tower, got %+v", g.ECS.Towers[a])
	}
	if got, _ := g.GemAt(InventorySlot(5)); got != blue {
		t.Errorf("Expected blue in slot 5, got %d", got)
	}
}

func TestSwapGemsInvalidSlot(t *testing.T) {
	g := newTestGame(t, testLevelYAML)
	if err := g.SwapGems(InventorySlot(-1), InventorySlot(0)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Expected ErrInvalidSlot, got %v", err)
	}
	if err := g.SwapGems(TowerSlot(999), InventorySlot(0)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Expected ErrInvalidSlot for a missing tower, got %v", err)
	}
}
