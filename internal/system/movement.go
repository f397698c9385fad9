// internal/system/movement.go
package system

import (
	"log"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
	"go-gem-defense/pkg/grid"
)

const moveKey = "move"

// MovementSystem ведёт врагов от клетки к клетке по направлениям,
// которые выставил поиск пути. Направление перечитывается только между
// шагами, поэтому перестройка пути подхватывается на следующем шаге.
type MovementSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	grid            *grid.Grid
	combat          *CombatSystem
	economy         Economy
	eventDispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, clk *clock.Clock, g *grid.Grid, combat *CombatSystem, economy Economy, eventDispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{
		ecs:             ecs,
		clock:           clk,
		grid:            g,
		combat:          combat,
		economy:         economy,
		eventDispatcher: eventDispatcher,
	}
}

// Begin переводит заспавненного врага в Alive и начинает первый шаг.
func (s *MovementSystem) Begin(id types.EntityID) {
	enemy, ok := s.ecs.Enemies[id]
	if !ok {
		return
	}
	enemy.State = component.EnemyAlive
	s.startHop(id)
}

// nextCell returns the cell an enemy standing on c should step into.
func (s *MovementSystem) nextCell(c *grid.Cell) *grid.Cell {
	if c.Parent != nil {
		return c.Parent
	}
	// Клетку застроили, пока враг шёл в неё: шагаем к ближайшему
	// по пути проходимому соседу.
	var best *grid.Cell
	for _, d := range grid.Cardinals {
		n := s.grid.Neighbor(c.Coord, d)
		if n == nil || !n.Pathable || !n.Reachable() {
			continue
		}
		if best == nil || n.PathDist < best.PathDist {
			best = n
		}
	}
	return best
}

func (s *MovementSystem) startHop(id types.EntityID) {
	enemy, ok := s.ecs.Enemies[id]
	move, hasMove := s.ecs.Movements[id]
	if !ok || !hasMove || !enemy.IsAlive() {
		return
	}
	if move.Cell == s.grid.Exit {
		s.reachExit(id)
		return
	}

	cell := s.grid.At(move.Cell)
	if cell == nil {
		log.Printf("[MovementSystem] enemy %d is outside the grid at %v", id, move.Cell)
		return
	}
	next := s.nextCell(cell)
	if next == nil {
		log.Printf("[MovementSystem] enemy %d has no way out of %v", id, move.Cell)
		return
	}

	enemy.TravelDist++
	move.Next = next.Coord
	move.Moving = true
	move.HopStart = s.clock.Now()
	move.HopDuration = config.CellTraversalBaseTime * move.CurrSpeed
	if cell.Parent != nil {
		move.Facing = cell.Dir
	}

	s.clock.ScheduleKeyed(id, moveKey, move.HopDuration, func() {
		s.finishHop(id)
	})
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyMoved, Data: event.MoveData{
		EnemyID:  id,
		From:     move.Cell,
		To:       move.Next,
		Duration: move.HopDuration,
	}})
}

func (s *MovementSystem) finishHop(id types.EntityID) {
	move, ok := s.ecs.Movements[id]
	if !ok {
		return
	}
	move.Cell = move.Next
	move.Moving = false
	s.startHop(id)
}

// reachExit снимает эффекты, отнимает у игрока здоровье и ставит удаление.
func (s *MovementSystem) reachExit(id types.EntityID) {
	enemy := s.ecs.Enemies[id]
	enemy.State = component.EnemyReachedExit
	s.combat.ClearEffects(id)

	s.economy.ModifyHp(-enemy.ExitDamage)
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyReachedExit, Data: event.EnemyData{
		EnemyID: id,
		WaveID:  enemy.WaveID,
		Cell:    s.grid.Exit,
	}})
	s.combat.ScheduleDespawn(id, config.ExitDespawnDelay)
}

// PositionAt возвращает позицию врага в единицах клеток, интерполируя
// текущий шаг по времени часов.
func (s *MovementSystem) PositionAt(id types.EntityID) (component.Position, bool) {
	move, ok := s.ecs.Movements[id]
	if !ok {
		return component.Position{}, false
	}
	from := s.grid.At(move.Cell)
	if from == nil {
		return component.Position{}, false
	}
	x, y := from.Center()
	if !move.Moving || move.HopDuration <= 0 {
		return component.Position{X: x, Y: y}, true
	}
	to := s.grid.At(move.Next)
	if to == nil {
		return component.Position{X: x, Y: y}, true
	}
	tx, ty := to.Center()
	t := utils.Clamp01((s.clock.Now() - move.HopStart) / move.HopDuration)
	return component.Position{X: utils.Lerp(x, tx, t), Y: utils.Lerp(y, ty, t)}, true
}
