// internal/app/inventory.go
package app

import (
	"errors"
	"log"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
)

var (
	ErrInventoryFull = errors.New("inventory is full")
	ErrInvalidSlot   = errors.New("invalid gem slot")
	ErrInvalidGem    = errors.New("invalid gem colour or rank")
)

// Slot — место, где может лежать самоцвет: башня или ячейка инвентаря.
type Slot struct {
	Tower types.EntityID // если не 0, слот — это башня
	Index int
}

// TowerSlot addresses the gem socket of a tower.
func TowerSlot(id types.EntityID) Slot {
	return Slot{Tower: id}
}

// InventorySlot addresses an inventory cell.
func InventorySlot(i int) Slot {
	return Slot{Index: i}
}

func (s Slot) isTower() bool {
	return s.Tower != 0
}

// Inventory returns a copy of the inventory cells; 0 marks an empty cell.
func (g *Game) Inventory() []types.EntityID {
	out := make([]types.EntityID, len(g.inventory))
	copy(out, g.inventory[:])
	return out
}

// GemCost returns the energy price of a gem of the given rank.
func (g *Game) GemCost(rank defs.GemRank) int {
	return g.Level.Costs.GemCost(rank)
}

func (g *Game) freeSlot() int {
	for i, id := range g.inventory {
		if id == 0 {
			return i
		}
	}
	return -1
}

// CreateGem покупает самоцвет и кладёт его в первую свободную ячейку.
func (g *Game) CreateGem(color defs.GemColor, rank defs.GemRank) (types.EntityID, error) {
	if !color.Valid() || !rank.Valid() {
		return 0, ErrInvalidGem
	}
	if g.ECS.GameState != component.PlayingState {
		return 0, ErrGameNotRunning
	}
	slot := g.freeSlot()
	if slot < 0 {
		log.Printf("[Game] gem rejected: %v", ErrInventoryFull)
		return 0, ErrInventoryFull
	}
	if !g.PlayerSystem.Spend(g.GemCost(rank)) {
		log.Printf("[Game] gem rejected: %v", ErrNotEnoughEnergy)
		return 0, ErrNotEnoughEnergy
	}

	id := g.ECS.NewEntity()
	gem := &component.Gem{Color: color, Rank: rank}
	if gem.Definition().Attack == defs.AttackAmmo {
		gem.Charges = config.MaxCharges
	}
	g.ECS.Gems[id] = gem
	g.inventory[slot] = id

	g.world.Dispatch(event.Event{Type: event.GemCreated, Data: event.GemData{
		GemID: id,
		Color: color,
		Rank:  rank,
		Slot:  slot,
	}})
	return id, nil
}

// CreateRandomGem creates a gem of a random colour and a rank no higher than maxRank.
func (g *Game) CreateRandomGem(maxRank defs.GemRank) (types.EntityID, error) {
	return g.CreateGem(g.Rng.RandomColor(), g.Rng.RandomRank(maxRank))
}

// GemAt returns the gem held by a slot, or 0.
func (g *Game) GemAt(s Slot) (types.EntityID, error) {
	if s.isTower() {
		tower, ok := g.ECS.Towers[s.Tower]
		if !ok {
			return 0, ErrInvalidSlot
		}
		return tower.GemID, nil
	}
	if s.Index < 0 || s.Index >= len(g.inventory) {
		return 0, ErrInvalidSlot
	}
	return g.inventory[s.Index], nil
}

// SwapGems меняет содержимое двух слотов. Башня, из которой забирают
// самоцвет, останавливается; башня, получившая самоцвет, начинает поиск цели.
func (g *Game) SwapGems(a, b Slot) error {
	gemA, err := g.GemAt(a)
	if err != nil {
		log.Printf("[Game] swap rejected: %v", err)
		return err
	}
	gemB, err := g.GemAt(b)
	if err != nil {
		log.Printf("[Game] swap rejected: %v", err)
		return err
	}
	if a == b || (gemA == 0 && gemB == 0) {
		return nil
	}

	g.take(a)
	g.take(b)
	g.put(a, gemB)
	g.put(b, gemA)

	g.world.Dispatch(event.Event{Type: event.GemsSwapped, Data: [2]types.EntityID{gemA, gemB}})
	return nil
}

func (g *Game) take(s Slot) {
	if s.isTower() {
		g.TowerSystem.Unequip(s.Tower)
		return
	}
	g.inventory[s.Index] = 0
}

func (g *Game) put(s Slot, gemID types.EntityID) {
	if gemID == 0 {
		return
	}
	if s.isTower() {
		g.TowerSystem.Equip(s.Tower, gemID)
		return
	}
	g.inventory[s.Index] = gemID
}
