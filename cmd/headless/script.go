// cmd/headless/script.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"

	"gopkg.in/yaml.v3"
)

// BuildScript — план застройки, выполняемый до первой волны.
type BuildScript struct {
	Towers []TowerPlan `yaml:"towers"`
}

// TowerPlan places one tower and optionally buys a gem for it.
type TowerPlan struct {
	Row  int    `yaml:"row"`
	Col  int    `yaml:"col"`
	Gem  string `yaml:"gem"` // пусто — башня без самоцвета
	Rank int    `yaml:"rank"`
}

func loadScript(path string) (*BuildScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*BuildScript, error) {
	var s BuildScript
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, t := range s.Towers {
		if t.Gem == "" {
			continue
		}
		if _, err := defs.ParseGemColor(t.Gem); err != nil {
			return nil, fmt.Errorf("tower %d: %w", i, err)
		}
		if !defs.GemRank(t.Rank).Valid() {
			return nil, fmt.Errorf("tower %d: invalid rank %d", i, t.Rank)
		}
	}
	return &s, nil
}

// apply runs the plan. A step that the game rejects is logged and skipped,
// so a script written for one level can still be tried on another.
func (s *BuildScript) apply(g *app.Game) (built int, err error) {
	var errs []error
	for i, t := range s.Towers {
		id, buildErr := g.BuildTower(grid.Coord{Row: t.Row, Col: t.Col})
		if buildErr != nil {
			log.Printf("[Script] tower %d at %d,%d skipped: %v", i, t.Row, t.Col, buildErr)
			errs = append(errs, buildErr)
			continue
		}
		built++
		if t.Gem == "" {
			continue
		}
		color, _ := defs.ParseGemColor(t.Gem)
		gemID, gemErr := g.CreateGem(color, defs.GemRank(t.Rank))
		if gemErr != nil {
			log.Printf("[Script] gem for tower %d skipped: %v", i, gemErr)
			errs = append(errs, gemErr)
			continue
		}
		slot := slotOf(g.Inventory(), gemID)
		if swapErr := g.SwapGems(app.InventorySlot(slot), app.TowerSlot(id)); swapErr != nil {
			errs = append(errs, swapErr)
		}
	}
	return built, errors.Join(errs...)
}

func slotOf(inventory []types.EntityID, gemID types.EntityID) int {
	return slices.Index(inventory, gemID)
}
