// internal/defs/loader.go
package defs

import (
	"errors"
	"fmt"
	"os"

	"go-gem-defense/internal/config"
	"go-gem-defense/pkg/grid"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("invalid level")

// LoadLevel reads and validates a level file. Nothing is returned unless the
// whole file is valid.
func LoadLevel(path string) (*LevelDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes a level from YAML, fills defaults and validates it.
func ParseLevel(data []byte) (*LevelDefinition, error) {
	var level LevelDefinition
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level YAML: %w", err)
	}
	applyDefaults(&level)
	if err := validateLevel(&level); err != nil {
		return nil, err
	}
	return &level, nil
}

// BuildGrid turns the pathmap into a grid with pathing computed. A level whose
// exit cannot reach its start fails here.
func (l *LevelDefinition) BuildGrid() (*grid.Grid, error) {
	g, err := grid.ParsePathmap(l.Pathmap)
	if err != nil {
		return nil, fmt.Errorf("pathmap: %w", err)
	}
	g.Tileset = l.Tileset
	if err := grid.ComputePathing(g); err != nil {
		return nil, fmt.Errorf("pathmap: %w", err)
	}
	return g, nil
}

func applyDefaults(level *LevelDefinition) {
	if level.Tileset == "" {
		level.Tileset = config.DefaultTileset
	}
	for i := range level.Rounds {
		for j := range level.Rounds[i].Waves {
			w := &level.Rounds[i].Waves[j]
			if w.Enemy == "" {
				w.Enemy = config.DefaultEnemyType
			}
			if w.Speed == 0 {
				w.Speed = config.DefaultEnemySpeed
			}
			if w.Scale == 0 {
				w.Scale = config.DefaultEnemyScale
			}
		}
	}
}

func validateLevel(level *LevelDefinition) error {
	if level.Start.Hp <= 0 {
		return fmt.Errorf("%w: start hp must be positive, got %d", ErrInvalidLevel, level.Start.Hp)
	}
	if level.Start.Energy < 0 {
		return fmt.Errorf("%w: start energy cannot be negative", ErrInvalidLevel)
	}
	if level.Costs.Tower < 0 {
		return fmt.Errorf("%w: tower cost cannot be negative", ErrInvalidLevel)
	}
	if len(level.Costs.Gem) > NumGemRanks {
		return fmt.Errorf("%w: %d gem costs for %d ranks", ErrInvalidLevel, len(level.Costs.Gem), NumGemRanks)
	}
	for i, c := range level.Costs.Gem {
		if c < 0 {
			return fmt.Errorf("%w: gem cost %d cannot be negative", ErrInvalidLevel, i)
		}
	}
	if _, err := grid.ParsePathmap(level.Pathmap); err != nil {
		return fmt.Errorf("%w: pathmap: %w", ErrInvalidLevel, err)
	}
	if len(level.Rounds) == 0 {
		return fmt.Errorf("%w: at least one round is required", ErrInvalidLevel)
	}
	for i, r := range level.Rounds {
		if len(r.Waves) == 0 {
			return fmt.Errorf("%w: round %d has no waves", ErrInvalidLevel, i)
		}
		for j, w := range r.Waves {
			if err := validateWave(w); err != nil {
				return fmt.Errorf("%w: round %d, wave %d: %w", ErrInvalidLevel, i, j, err)
			}
		}
	}
	return nil
}

func validateWave(w WaveDefinition) error {
	if _, ok := EnemyLibrary[w.Enemy]; !ok {
		return fmt.Errorf("unknown enemy type %q", w.Enemy)
	}
	switch {
	case w.Hp <= 0:
		return fmt.Errorf("hp must be positive, got %v", w.Hp)
	case w.Armor < 0:
		return fmt.Errorf("armor cannot be negative, got %v", w.Armor)
	case w.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %v", w.Speed)
	case w.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %v", w.Scale)
	case w.Count < 1:
		return fmt.Errorf("count must be at least 1, got %d", w.Count)
	case w.SpawnInterval <= 0:
		return fmt.Errorf("spawnInterval must be positive, got %v", w.SpawnInterval)
	case w.Period <= 0:
		return fmt.Errorf("period must be positive, got %v", w.Period)
	case w.Bounty < 0 || w.Score < 0:
		return fmt.Errorf("bounty and score cannot be negative")
	case w.ExitDamage < 0:
		return fmt.Errorf("exitDamage cannot be negative, got %d", w.ExitDamage)
	}
	return nil
}
