// internal/app/tower_management.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

var (
	ErrOutOfBounds     = errors.New("cell is outside the map")
	ErrEndpoint        = errors.New("cannot build on the start or exit")
	ErrNotBuildable    = errors.New("cell is not buildable")
	ErrWouldBlockPath  = errors.New("tower would block the path")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrGameNotRunning  = errors.New("game is not running")
)

// TowerCost returns the energy price of a tower.
func (g *Game) TowerCost() int {
	return g.Level.Costs.Tower
}

// BuildTower ставит башню на клетку. Отказ не меняет состояние мира.
// После постройки путь пересчитывается сразу, в том же вызове.
func (g *Game) BuildTower(c grid.Coord) (types.EntityID, error) {
	if err := g.canPlaceTower(c); err != nil {
		log.Printf("[Game] build at %v rejected: %v", c, err)
		return 0, err
	}
	if !g.PlayerSystem.Spend(g.TowerCost()) {
		log.Printf("[Game] build at %v rejected: %v", c, ErrNotEnoughEnergy)
		return 0, ErrNotEnoughEnergy
	}

	cell := g.Grid.At(c)
	cell.Pathable = false
	cell.Buildable = false
	id := g.createTowerEntity(c)
	cell.Tower = id

	if err := grid.ComputePathing(g.Grid); err != nil {
		// IsConnected уже проверил связность, сюда попадать не должны.
		log.Printf("[Game] pathing failed after build at %v: %v", c, err)
		return id, fmt.Errorf("build at %v: %w", c, err)
	}

	g.world.Dispatch(event.Event{Type: event.TowerBuilt, Data: event.TowerData{TowerID: id, Cell: c}})
	return id, nil
}

func (g *Game) canPlaceTower(c grid.Coord) error {
	if g.ECS.GameState != component.PlayingState {
		return ErrGameNotRunning
	}
	cell := g.Grid.At(c)
	if cell == nil {
		return ErrOutOfBounds
	}
	if g.Grid.IsEndpoint(c) {
		return ErrEndpoint
	}
	if !cell.Buildable || cell.Tower != 0 {
		return ErrNotBuildable
	}
	if cell.Pathable && !grid.IsConnected(g.Grid, cell) {
		return ErrWouldBlockPath
	}
	if cell.Pathable && !grid.CanReachExit(g.Grid, cell, g.enemyCells()...) {
		return ErrWouldBlockPath
	}
	if g.ECS.PlayerState.Energy < g.TowerCost() {
		return ErrNotEnoughEnergy
	}
	return nil
}

// enemyCells lists the cells occupied or entered by enemies still on the map.
// None of them may be cut off from the exit.
func (g *Game) enemyCells() []grid.Coord {
	var cells []grid.Coord
	for id, enemy := range g.ECS.Enemies {
		if enemy.State != component.EnemySpawning && enemy.State != component.EnemyAlive {
			continue
		}
		move, ok := g.ECS.Movements[id]
		if !ok {
			continue
		}
		cells = append(cells, move.Cell)
		if move.Moving {
			cells = append(cells, move.Next)
		}
	}
	return cells
}

func (g *Game) createTowerEntity(c grid.Coord) types.EntityID {
	id := g.ECS.NewEntity()
	g.ECS.Towers[id] = &component.Tower{Cell: c, State: component.TowerIdle}
	return id
}

// TowerAt returns the tower standing on c, or 0.
func (g *Game) TowerAt(c grid.Coord) types.EntityID {
	cell := g.Grid.At(c)
	if cell == nil {
		return 0
	}
	return cell.Tower
}
