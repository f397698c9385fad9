// internal/defs/level.go
package defs

import (
	"go-gem-defense/internal/config"

	"gopkg.in/yaml.v3"
)

// LevelDefinition is the YAML description of a level.
type LevelDefinition struct {
	Name    string            `yaml:"name"`
	Tileset string            `yaml:"tileset"`
	Start   StartAttributes   `yaml:"start"`
	Costs   CostDefinition    `yaml:"costs"`
	Pathmap []string          `yaml:"pathmap"` // верхняя строка карты идёт первой
	Rounds  []RoundDefinition `yaml:"rounds"`
}

// StartAttributes — стартовые ресурсы игрока.
type StartAttributes struct {
	Hp     int `yaml:"hp"`
	Energy int `yaml:"energy"`
}

// CostDefinition lists energy prices. Zero means free.
type CostDefinition struct {
	Tower int   `yaml:"tower"`
	Gem   []int `yaml:"gem"` // по рангам, от Sliver до Core
}

// GemCost returns the price of a gem of the given rank.
func (c CostDefinition) GemCost(rank GemRank) int {
	if int(rank) < len(c.Gem) && rank >= 0 {
		return c.Gem[rank]
	}
	return 0
}

// RoundDefinition — упорядоченный список волн раунда.
type RoundDefinition struct {
	Waves []WaveDefinition `yaml:"waves"`
}

// WaveDefinition описывает одну волну одинаковых врагов.
type WaveDefinition struct {
	Enemy         string  `yaml:"enemy"`
	Hp            float64 `yaml:"hp"`
	Armor         float64 `yaml:"armor"`
	Speed         float64 `yaml:"speed"`
	Scale         float64 `yaml:"scale"`
	Bounty        int     `yaml:"bounty"`
	Score         int     `yaml:"score"`
	Count         int     `yaml:"count"`
	SpawnInterval float64 `yaml:"spawnInterval"`
	Period        float64 `yaml:"period"` // время до автоматического старта следующей волны
	ExitDamage    int     `yaml:"exitDamage"`
}

// UnmarshalYAML fills ExitDamage with its default before decoding, so an
// explicit exitDamage: 0 is kept.
func (w *WaveDefinition) UnmarshalYAML(value *yaml.Node) error {
	type plain WaveDefinition
	p := plain{ExitDamage: config.DefaultExitDamage}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*w = WaveDefinition(p)
	return nil
}

// TotalWaves counts the waves over all rounds.
func (l *LevelDefinition) TotalWaves() int {
	n := 0
	for _, r := range l.Rounds {
		n += len(r.Waves)
	}
	return n
}
