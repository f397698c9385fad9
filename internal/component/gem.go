// internal/component/gem.go
package component

import "go-gem-defense/internal/defs"

// Gem — самоцвет. Принадлежит либо одной башне, либо одной ячейке инвентаря.
type Gem struct {
	Color   defs.GemColor
	Rank    defs.GemRank
	Charges int // only meaningful for ammo colours
}

// Definition returns the colour table entry of the gem.
func (g *Gem) Definition() defs.GemColorDefinition {
	return defs.GemColors[g.Color]
}

// Damage returns the per-hit damage of the gem.
func (g *Gem) Damage() float64 {
	return defs.GemDamage(g.Color, g.Rank)
}
