// internal/component/projectile.go
package component

import (
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

// Projectile представляет летящий снаряд. Урон и цвет фиксируются при
// выстреле, поэтому снаряд долетает, даже если самоцвет вынули из башни.
type Projectile struct {
	TowerID    types.EntityID
	TargetID   types.EntityID
	Color      defs.GemColor
	Damage     float64
	FromX      float64
	FromY      float64
	LaunchedAt float64
	ImpactAt   float64
}
