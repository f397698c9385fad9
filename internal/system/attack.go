// internal/system/attack.go
package system

import (
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
)

// usesCharges reports whether the gem fires from a limited magazine.
func usesCharges(gem *component.Gem) bool {
	return gem.Definition().Attack == defs.AttackAmmo
}

// launchAttack запускает эффект цвета самоцвета по цели.
func (s *TowerSystem) launchAttack(towerID types.EntityID, tower *component.Tower, gem *component.Gem, target types.EntityID) {
	switch gem.Definition().Attack {
	case defs.AttackArea:
		s.area.Strike(towerID, tower.Cell, target, gem)
	case defs.AttackAmmo:
		s.useCharge(tower.GemID, gem)
		s.projectiles.Launch(towerID, tower.Cell, target, gem)
	default:
		s.projectiles.Launch(towerID, tower.Cell, target, gem)
	}

	s.eventDispatcher.Dispatch(event.Event{Type: event.TowerAttack, Data: event.AttackData{
		TowerID:  towerID,
		TargetID: target,
		Color:    gem.Color,
		Damage:   gem.Damage(),
	}})
}

// useCharge тратит заряд. Выстрел с полным магазином запускает перезарядку.
func (s *TowerSystem) useCharge(gemID types.EntityID, gem *component.Gem) {
	if gem.Charges >= config.MaxCharges {
		s.scheduleRecharge(gemID, gem)
	}
	if gem.Charges > 0 {
		gem.Charges--
	}
}

func (s *TowerSystem) scheduleRecharge(gemID types.EntityID, gem *component.Gem) {
	delay := gem.Definition().Period * config.RechargePenalty
	s.clock.ScheduleKeyed(gemID, rechargeKey, delay, func() {
		s.recharge(gemID)
	})
}

// recharge добавляет один заряд и продолжает цикл, пока магазин не полон.
func (s *TowerSystem) recharge(gemID types.EntityID) {
	gem, ok := s.ecs.Gems[gemID]
	if !ok {
		return
	}
	if gem.Charges < config.MaxCharges {
		gem.Charges++
	}
	if gem.Charges < config.MaxCharges {
		s.scheduleRecharge(gemID, gem)
	}
}

// resumeRecharge перезапускает перезарядку, прерванную снятием самоцвета.
func (s *TowerSystem) resumeRecharge(gemID types.EntityID, gem *component.Gem) {
	if !usesCharges(gem) || gem.Charges >= config.MaxCharges {
		return
	}
	if !s.clock.IsPending(gemID, rechargeKey) {
		s.scheduleRecharge(gemID, gem)
	}
}
