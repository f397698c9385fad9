// internal/component/enemy.go
package component

import (
	"go-gem-defense/internal/types"

	"github.com/zyedidia/generic/mapset"
)

// EnemyState — стадия жизненного цикла врага.
type EnemyState int

const (
	EnemySpawning EnemyState = iota
	EnemyAlive
	EnemyDying
	EnemyReachedExit
	EnemyDespawned
)

func (s EnemyState) String() string {
	switch s {
	case EnemySpawning:
		return "spawning"
	case EnemyAlive:
		return "alive"
	case EnemyDying:
		return "dying"
	case EnemyReachedExit:
		return "reached-exit"
	case EnemyDespawned:
		return "despawned"
	}
	return "unknown"
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	Type       string         // ID из EnemyLibrary
	WaveID     types.EntityID // волна, породившая врага
	Armor      float64
	Scale      float64
	Bounty     int
	Score      int
	ExitDamage int // сколько здоровья теряет игрок, если враг дошёл до выхода
	TravelDist int // число начатых шагов по пути
	State      EnemyState
	Attackers  mapset.Set[types.EntityID] // башни, которые сейчас целятся во врага
}

// IsAlive reports whether the enemy can still be targeted and damaged.
func (e *Enemy) IsAlive() bool {
	return e.State == EnemyAlive
}
