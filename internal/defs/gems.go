// internal/defs/gems.go
package defs

// GemColorDefinition holds the static data of one gem colour.
type GemColorDefinition struct {
	Name     string
	Range    float64 // в клетках
	Period   float64 // секунд между выстрелами
	Damage   [NumGemRanks]float64
	Policy   TargetPolicy
	Attack   AttackKind
	Flight   float64 // длительность одного шага полёта снаряда, 0 для мгновенных атак
	Retarget bool    // сбрасывать цель после каждого выстрела
}

// GemColors is indexed by GemColor.
var GemColors = [NumGemColors]GemColorDefinition{
	GemRed: {
		Name:   "Ruby",
		Range:  1.5,
		Period: 1.0,
		Damage: [NumGemRanks]float64{150, 195, 240, 285, 330},
		Policy: PolicyStandard,
		Attack: AttackArea,
	},
	GemYellow: {
		Name:   "Topaz",
		Range:  4.0,
		Period: 1.0,
		Damage: [NumGemRanks]float64{200, 260, 320, 380, 440},
		Policy: PolicyStandard,
		Attack: AttackAmmo,
		Flight: 0.05,
	},
	GemGreen: {
		Name:     "Emerald",
		Range:    2.5,
		Period:   2.5,
		Damage:   [NumGemRanks]float64{100, 130, 160, 190, 220},
		Policy:   PolicyPoisonedPreference,
		Attack:   AttackPoison,
		Flight:   0.08,
		Retarget: true,
	},
	GemBlue: {
		Name:     "Aquamarine",
		Range:    1.5,
		Period:   1.5,
		Damage:   [NumGemRanks]float64{100, 130, 160, 190, 220},
		Policy:   PolicySlowedPreference,
		Attack:   AttackSlow,
		Flight:   0.05,
		Retarget: true,
	},
}

// GemDamage returns the damage of a colour at a rank, or 0 for invalid input.
func GemDamage(color GemColor, rank GemRank) float64 {
	if !color.Valid() || !rank.Valid() {
		return 0
	}
	return GemColors[color].Damage[rank]
}
