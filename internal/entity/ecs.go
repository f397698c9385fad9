// internal/entity/ecs.go
package entity

import (
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/types"
)

type ECS struct {
	NextID        types.EntityID
	Enemies       map[types.EntityID]*component.Enemy
	Healths       map[types.EntityID]*component.Health
	Movements     map[types.EntityID]*component.Movement
	SlowEffects   map[types.EntityID]*component.SlowEffect
	PoisonEffects map[types.EntityID]*component.PoisonEffect
	Towers        map[types.EntityID]*component.Tower
	Gems          map[types.EntityID]*component.Gem
	Waves         map[types.EntityID]*component.Wave
	Projectiles   map[types.EntityID]*component.Projectile
	Rounds        []*component.Round // очередь раундов; первый — текущий
	PlayerState   *component.PlayerStateComponent
	GameState     component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Healths:       make(map[types.EntityID]*component.Health),
		Movements:     make(map[types.EntityID]*component.Movement),
		SlowEffects:   make(map[types.EntityID]*component.SlowEffect),
		PoisonEffects: make(map[types.EntityID]*component.PoisonEffect),
		Towers:        make(map[types.EntityID]*component.Tower),
		Gems:          make(map[types.EntityID]*component.Gem),
		Waves:         make(map[types.EntityID]*component.Wave),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		PlayerState:   &component.PlayerStateComponent{},
		GameState:     component.PlayingState,
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Enemies, id)
	delete(ecs.Healths, id)
	delete(ecs.Movements, id)
	delete(ecs.SlowEffects, id)
	delete(ecs.PoisonEffects, id)
	delete(ecs.Towers, id)
	delete(ecs.Gems, id)
	delete(ecs.Waves, id)
	delete(ecs.Projectiles, id)
}

// CurrentRound returns the round at the head of the queue, or nil.
func (ecs *ECS) CurrentRound() *component.Round {
	if len(ecs.Rounds) == 0 {
		return nil
	}
	return ecs.Rounds[0]
}

// IsPoisoned reports whether the entity has queued poison ticks.
func (ecs *ECS) IsPoisoned(id types.EntityID) bool {
	p, ok := ecs.PoisonEffects[id]
	return ok && len(p.Ticks) > 0
}

// IsSlowed reports whether the entity has at least one active slow.
func (ecs *ECS) IsSlowed(id types.EntityID) bool {
	s, ok := ecs.SlowEffects[id]
	return ok && len(s.Instances) > 0
}
