// internal/system/status_effect.go
package system

import (
	"fmt"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
)

const poisonKey = "poison"

// StatusEffectSystem управляет жизненным циклом эффектов: замедлением и ядом.
// Каждый эффект живёт на собственном таймере часов.
type StatusEffectSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	combat          *CombatSystem
	eventDispatcher *event.Dispatcher
}

func NewStatusEffectSystem(ecs *entity.ECS, clk *clock.Clock, combat *CombatSystem, eventDispatcher *event.Dispatcher) *StatusEffectSystem {
	return &StatusEffectSystem{
		ecs:             ecs,
		clock:           clk,
		combat:          combat,
		eventDispatcher: eventDispatcher,
	}
}

func slowKey(instance uint64) string {
	return fmt.Sprintf("slow:%d", instance)
}

// ApplySlow добавляет замедление. Действует самое сильное (наименьшее)
// значение; каждое истекает само по себе через duration секунд.
// Уже начатый шаг не пересчитывается.
func (s *StatusEffectSystem) ApplySlow(id types.EntityID, magnitude, duration float64) {
	enemy, ok := s.ecs.Enemies[id]
	if !ok || !enemy.IsAlive() || magnitude <= 0 {
		return
	}
	slow, ok := s.ecs.SlowEffects[id]
	if !ok {
		slow = &component.SlowEffect{}
		s.ecs.SlowEffects[id] = slow
	}
	slow.NextID++
	instance := slow.NextID
	slow.Instances = append(slow.Instances, component.SlowInstance{ID: instance, Magnitude: magnitude})
	s.updateSpeed(id)

	s.clock.ScheduleKeyed(id, slowKey(instance), duration, func() {
		s.removeSlow(id, instance)
	})
	s.eventDispatcher.Dispatch(event.Event{Type: event.SlowApplied, Data: event.EffectData{EnemyID: id, Magnitude: magnitude}})
}

func (s *StatusEffectSystem) removeSlow(id types.EntityID, instance uint64) {
	slow, ok := s.ecs.SlowEffects[id]
	if !ok {
		return
	}
	for i, inst := range slow.Instances {
		if inst.ID == instance {
			slow.Instances = append(slow.Instances[:i], slow.Instances[i+1:]...)
			break
		}
	}
	s.updateSpeed(id)
}

// updateSpeed пересчитывает текущую скорость из базовой и самого сильного замедления.
func (s *StatusEffectSystem) updateSpeed(id types.EntityID) {
	move, ok := s.ecs.Movements[id]
	if !ok {
		return
	}
	move.CurrSpeed = move.BaseSpeed / s.ecs.SlowEffects[id].Strongest()
}

// SpeedMultiplier returns CurrSpeed / BaseSpeed of an enemy.
func (s *StatusEffectSystem) SpeedMultiplier(id types.EntityID) float64 {
	return 1 / s.ecs.SlowEffects[id].Strongest()
}

// ApplyPoison ставит в очередь numTicks тиков по perTick урона. Существующие
// более слабые тики поднимаются до perTick, более сильные не меняются.
func (s *StatusEffectSystem) ApplyPoison(id types.EntityID, perTick float64, numTicks int) {
	enemy, ok := s.ecs.Enemies[id]
	if !ok || !enemy.IsAlive() || numTicks <= 0 {
		return
	}
	poison, ok := s.ecs.PoisonEffects[id]
	if !ok {
		poison = &component.PoisonEffect{}
		s.ecs.PoisonEffects[id] = poison
	}
	for i := 0; i < numTicks; i++ {
		if i < len(poison.Ticks) {
			if poison.Ticks[i] < perTick {
				poison.Ticks[i] = perTick
			}
			continue
		}
		poison.Ticks = append(poison.Ticks, perTick)
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.PoisonApplied, Data: event.EffectData{
		EnemyID:   id,
		Magnitude: perTick,
		Ticks:     len(poison.Ticks),
	}})

	if !poison.Running {
		poison.Running = true
		s.schedulePoisonTick(id)
	}
}

func (s *StatusEffectSystem) schedulePoisonTick(id types.EntityID) {
	s.clock.ScheduleKeyed(id, poisonKey, config.PoisonTickInterval, func() {
		s.poisonTick(id)
	})
}

func (s *StatusEffectSystem) poisonTick(id types.EntityID) {
	poison, ok := s.ecs.PoisonEffects[id]
	if !ok || len(poison.Ticks) == 0 {
		return
	}
	damage := poison.Ticks[0]
	poison.Ticks = poison.Ticks[1:]

	// Яд игнорирует броню.
	s.combat.ProjectDamage(id, damage, 1.0)
	s.combat.TakeDamage(id, damage, 1.0)

	// Враг мог умереть от этого тика: тогда эффекты уже сняты.
	poison, ok = s.ecs.PoisonEffects[id]
	if !ok {
		return
	}
	if len(poison.Ticks) > 0 {
		s.schedulePoisonTick(id)
		return
	}
	poison.Running = false
	delete(s.ecs.PoisonEffects, id)
	s.eventDispatcher.Dispatch(event.Event{Type: event.PoisonCleared, Data: event.EffectData{EnemyID: id}})
}
