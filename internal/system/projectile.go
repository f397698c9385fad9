// internal/system/projectile.go
package system

import (
	"math"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
	"go-gem-defense/pkg/grid"
)

// ProjectileSystem запускает снаряды и применяет эффект цвета при попадании.
// Время полёта считается один раз при выстреле.
type ProjectileSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	grid            *grid.Grid
	combat          *CombatSystem
	status          *StatusEffectSystem
	movement        *MovementSystem
	eventDispatcher *event.Dispatcher
}

func NewProjectileSystem(ecs *entity.ECS, clk *clock.Clock, g *grid.Grid, combat *CombatSystem, status *StatusEffectSystem, movement *MovementSystem, eventDispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:             ecs,
		clock:           clk,
		grid:            g,
		combat:          combat,
		status:          status,
		movement:        movement,
		eventDispatcher: eventDispatcher,
	}
}

// FlightTime returns how long a projectile of the given colour needs to
// cover distPx pixels.
func FlightTime(color defs.GemColor, distPx float64) float64 {
	steps := math.Floor(distPx/config.ProjectileStep) + 1
	return steps * defs.GemColors[color].Flight
}

// Launch выпускает снаряд из клетки башни по цели.
func (s *ProjectileSystem) Launch(towerID types.EntityID, from grid.Coord, targetID types.EntityID, gem *component.Gem) types.EntityID {
	pos, ok := s.movement.PositionAt(targetID)
	cell := s.grid.At(from)
	if !ok || cell == nil {
		return 0
	}
	fx, fy := cell.Center()
	distPx := math.Sqrt(utils.DistSq(fx, fy, pos.X, pos.Y)) * config.CellWidth
	now := s.clock.Now()

	id := s.ecs.NewEntity()
	s.ecs.Projectiles[id] = &component.Projectile{
		TowerID:    towerID,
		TargetID:   targetID,
		Color:      gem.Color,
		Damage:     gem.Damage(),
		FromX:      fx,
		FromY:      fy,
		LaunchedAt: now,
		ImpactAt:   now + FlightTime(gem.Color, distPx),
	}
	s.clock.Schedule(id, s.ecs.Projectiles[id].ImpactAt-now, func() {
		s.hitTarget(id)
	})
	return id
}

func (s *ProjectileSystem) removeProjectile(id types.EntityID) {
	delete(s.ecs.Projectiles, id)
}

func (s *ProjectileSystem) hitTarget(projectileID types.EntityID) {
	proj, ok := s.ecs.Projectiles[projectileID]
	if !ok {
		return
	}
	s.removeProjectile(projectileID)

	// Цель умерла или ушла в выход, пока снаряд летел.
	enemy, ok := s.ecs.Enemies[proj.TargetID]
	if !ok || !enemy.IsAlive() {
		return
	}

	switch defs.GemColors[proj.Color].Attack {
	case defs.AttackPoison:
		s.status.ApplyPoison(proj.TargetID, proj.Damage/config.PoisonDivisor, config.PoisonTicks)
	case defs.AttackSlow:
		s.status.ApplySlow(proj.TargetID, config.SlowMagnitude, config.SlowDuration)
	}
	s.combat.TakeDamage(proj.TargetID, proj.Damage, 0)

	s.eventDispatcher.Dispatch(event.Event{Type: event.TowerImpact, Data: event.AttackData{
		TowerID:  proj.TowerID,
		TargetID: proj.TargetID,
		Color:    proj.Color,
		Damage:   proj.Damage,
	}})
}
