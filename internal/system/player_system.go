// internal/system/player_system.go
package system

import (
	"log"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
)

// Economy — то, что бой и движение меняют у игрока.
type Economy interface {
	ModifyEnergy(delta int)
	ModifyScore(delta int)
	ModifyHp(delta int)
}

// PlayerSystem отвечает за ресурсы игрока: очки, энергию и здоровье.
type PlayerSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewPlayerSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *PlayerSystem {
	return &PlayerSystem{ecs: ecs, eventDispatcher: eventDispatcher}
}

func (s *PlayerSystem) ModifyEnergy(delta int) {
	if delta == 0 {
		return
	}
	p := s.ecs.PlayerState
	p.Energy += delta
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnergyChanged, Data: event.ValueData{Value: p.Energy, Delta: delta}})
}

func (s *PlayerSystem) ModifyScore(delta int) {
	if delta == 0 {
		return
	}
	p := s.ecs.PlayerState
	p.Score += delta
	s.eventDispatcher.Dispatch(event.Event{Type: event.ScoreChanged, Data: event.ValueData{Value: p.Score, Delta: delta}})
}

// ModifyHp меняет здоровье игрока. Первое падение до нуля завершает игру.
func (s *PlayerSystem) ModifyHp(delta int) {
	if delta == 0 {
		return
	}
	p := s.ecs.PlayerState
	p.Hp += delta
	if p.Hp > p.MaxHp {
		p.Hp = p.MaxHp
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.HpChanged, Data: event.ValueData{Value: p.Hp, Delta: delta}})

	if p.Hp <= 0 && s.ecs.GameState == component.PlayingState {
		s.ecs.GameState = component.LostState
		log.Printf("[PlayerSystem] game over, score %d", p.Score)
		s.eventDispatcher.Dispatch(event.Event{Type: event.GameOver, Data: event.ValueData{Value: p.Score}})
	}
}

// Spend списывает энергию, если её хватает.
func (s *PlayerSystem) Spend(cost int) bool {
	if cost <= 0 {
		return true
	}
	if s.ecs.PlayerState.Energy < cost {
		return false
	}
	s.ModifyEnergy(-cost)
	return true
}
