// internal/system/area_attack_system.go
package system

import (
	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

// AreaAttackSystem наносит урон по области вокруг башни с небольшой задержкой.
type AreaAttackSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	grid            *grid.Grid
	combat          *CombatSystem
	movement        *MovementSystem
	waves           *WaveSystem
	eventDispatcher *event.Dispatcher
}

func NewAreaAttackSystem(ecs *entity.ECS, clk *clock.Clock, g *grid.Grid, combat *CombatSystem, movement *MovementSystem, waves *WaveSystem, eventDispatcher *event.Dispatcher) *AreaAttackSystem {
	return &AreaAttackSystem{
		ecs:             ecs,
		clock:           clk,
		grid:            g,
		combat:          combat,
		movement:        movement,
		waves:           waves,
		eventDispatcher: eventDispatcher,
	}
}

// Strike запоминает урон и радиус в момент выстрела и через RedImpactDelay
// бьёт всех живых врагов в радиусе.
func (s *AreaAttackSystem) Strike(towerID types.EntityID, from grid.Coord, targetID types.EntityID, gem *component.Gem) {
	damage := gem.Damage()
	color := gem.Color
	radius := defs.GemColors[color].Range

	s.clock.Schedule(towerID, config.RedImpactDelay, func() {
		// ActiveEnemies возвращает копию: TakeDamage меняет списки волн.
		for _, enemyID := range s.waves.ActiveEnemies() {
			enemy, ok := s.ecs.Enemies[enemyID]
			if !ok || !enemy.IsAlive() {
				continue
			}
			pos, ok := s.movement.PositionAt(enemyID)
			if !ok || !withinRange(s.grid, from, pos, radius) {
				continue
			}
			s.combat.TakeDamage(enemyID, damage, 0)
		}
		s.eventDispatcher.Dispatch(event.Event{Type: event.TowerImpact, Data: event.AttackData{
			TowerID:  towerID,
			TargetID: targetID,
			Color:    color,
			Damage:   damage,
		}})
	})
}
