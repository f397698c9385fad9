// internal/system/combat.go
package system

import (
	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

// CombatSystem применяет урон к врагам и ведёт их через смерть к удалению.
type CombatSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	economy         Economy
	eventDispatcher *event.Dispatcher
}

func NewCombatSystem(ecs *entity.ECS, clk *clock.Clock, economy Economy, eventDispatcher *event.Dispatcher) *CombatSystem {
	return &CombatSystem{
		ecs:             ecs,
		clock:           clk,
		economy:         economy,
		eventDispatcher: eventDispatcher,
	}
}

// mitigate возвращает урон после брони. Результат не ограничен снизу.
func (s *CombatSystem) mitigate(id types.EntityID, amount, armorBypass float64) float64 {
	armor := 0.0
	if enemy, ok := s.ecs.Enemies[id]; ok {
		armor = enemy.Armor
	}
	return amount - armor*(1-armorBypass)
}

// TakeDamage наносит урон врагу. Неположительный урон после брони здоровье
// не меняет. При падении здоровья до нуля враг умирает.
func (s *CombatSystem) TakeDamage(id types.EntityID, amount, armorBypass float64) {
	enemy, ok := s.ecs.Enemies[id]
	health, hasHealth := s.ecs.Healths[id]
	if !ok || !hasHealth || !enemy.IsAlive() || health.Current <= 0 {
		return
	}

	mitigated := max(0, s.mitigate(id, amount, armorBypass))
	health.Current -= mitigated
	if health.Current <= 0 {
		health.Current = 0
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyDamaged, Data: event.DamageData{
		EnemyID: id,
		Amount:  mitigated,
		Hp:      health.Current,
	}})

	if health.Current <= 0 {
		s.kill(id)
	}
}

// ProjectDamage учитывает урон, который уже выпущен, но ещё не долетел.
// Прогнозное здоровье может уходить ниже нуля.
func (s *CombatSystem) ProjectDamage(id types.EntityID, amount, armorBypass float64) {
	health, ok := s.ecs.Healths[id]
	if !ok {
		return
	}
	if mitigated := s.mitigate(id, amount, armorBypass); mitigated > 0 {
		health.Projected -= mitigated
	}
}

func (s *CombatSystem) kill(id types.EntityID) {
	enemy := s.ecs.Enemies[id]
	enemy.State = component.EnemyDying
	s.ClearEffects(id)

	s.economy.ModifyEnergy(enemy.Bounty)
	s.economy.ModifyScore(enemy.Score)

	// Волна и башни-атакующие реагируют на событие.
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.EnemyData{
		EnemyID: id,
		WaveID:  enemy.WaveID,
		Cell:    s.enemyCell(id),
	}})
	s.ScheduleDespawn(id, config.DeathDespawnDelay)
}

// ClearEffects снимает замедления и яд и отменяет все отложенные вызовы врага,
// включая незавершённый шаг.
func (s *CombatSystem) ClearEffects(id types.EntityID) {
	s.clock.CancelOwner(id)
	delete(s.ecs.SlowEffects, id)
	delete(s.ecs.PoisonEffects, id)
}

// ScheduleDespawn удаляет врага из реестра через delay секунд.
func (s *CombatSystem) ScheduleDespawn(id types.EntityID, delay float64) {
	s.clock.ScheduleKeyed(id, "despawn", delay, func() {
		s.Despawn(id)
	})
}

// Despawn removes the enemy from the registry and cancels everything keyed to it.
func (s *CombatSystem) Despawn(id types.EntityID) {
	enemy, ok := s.ecs.Enemies[id]
	if !ok {
		return
	}
	enemy.State = component.EnemyDespawned
	cell := s.enemyCell(id)
	s.clock.CancelOwner(id)
	s.ecs.RemoveEntity(id)
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyDespawned, Data: event.EnemyData{
		EnemyID: id,
		WaveID:  enemy.WaveID,
		Cell:    cell,
	}})
}

func (s *CombatSystem) enemyCell(id types.EntityID) grid.Coord {
	if m, ok := s.ecs.Movements[id]; ok {
		return m.Cell
	}
	return grid.Coord{}
}
