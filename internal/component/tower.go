// component/tower.go
package component

import (
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

// TowerState — состояние цикла атаки башни.
type TowerState int

const (
	TowerIdle TowerState = iota
	TowerSearching
	TowerAttacking
)

func (s TowerState) String() string {
	switch s {
	case TowerSearching:
		return "searching"
	case TowerAttacking:
		return "attacking"
	}
	return "idle"
}

type Tower struct {
	Cell   grid.Coord     // клетка, на которой стоит башня
	GemID  types.EntityID // вставленный самоцвет, 0 если пусто
	Target types.EntityID // текущая цель, 0 если нет
	State  TowerState
}
