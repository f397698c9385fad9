// internal/defs/types.go
package defs

import (
	"fmt"
	"strings"
)

// GemColor — цвет самоцвета; определяет урон, дальность, период атаки,
// политику выбора цели и эффект попадания.
type GemColor int

const (
	GemRed GemColor = iota
	GemYellow
	GemGreen
	GemBlue
)

// NumGemColors is the size of the colour table.
const NumGemColors = 4

func (c GemColor) String() string {
	if c >= 0 && int(c) < len(GemColors) {
		return GemColors[c].Name
	}
	return fmt.Sprintf("GemColor(%d)", int(c))
}

// Valid reports whether c indexes the colour table.
func (c GemColor) Valid() bool {
	return c >= 0 && int(c) < len(GemColors)
}

var colorAliases = map[string]GemColor{
	"red":    GemRed,
	"yellow": GemYellow,
	"green":  GemGreen,
	"blue":   GemBlue,
}

// ParseGemColor accepts a colour word ("red") or a gem name ("ruby"), in any case.
func ParseGemColor(name string) (GemColor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := colorAliases[name]; ok {
		return c, nil
	}
	for i, def := range GemColors {
		if strings.ToLower(def.Name) == name {
			return GemColor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gem colour %q", name)
}

// GemRank — ранг самоцвета, индекс в таблице урона цвета.
type GemRank int

const (
	RankSliver GemRank = iota
	RankFragment
	RankChunk
	RankCluster
	RankCore
)

// NumGemRanks is the number of ranks in every damage table.
const NumGemRanks = 5

var rankNames = [NumGemRanks]string{"Sliver", "Fragment", "Chunk", "Cluster", "Core"}

func (r GemRank) String() string {
	if r.Valid() {
		return rankNames[r]
	}
	return fmt.Sprintf("GemRank(%d)", int(r))
}

// Valid reports whether r is one of the five ranks.
func (r GemRank) Valid() bool {
	return r >= 0 && r < NumGemRanks
}

// TargetPolicy selects how a colour prioritises targets.
type TargetPolicy int

const (
	PolicyStandard TargetPolicy = iota
	PolicySlowedPreference
	PolicyPoisonedPreference
)

// AttackKind describes what happens when a tower of a given colour fires.
type AttackKind int

const (
	AttackArea   AttackKind = iota // урон всем врагам в радиусе после задержки
	AttackAmmo                     // снаряд, ограниченный запас зарядов
	AttackPoison                   // снаряд + яд
	AttackSlow                     // снаряд + замедление
)
