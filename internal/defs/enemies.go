// internal/defs/enemies.go
package defs

// EnemyDefinition holds the archetype data of an enemy type. Per-wave stats
// (hp, armor, speed, ...) come from the level; the archetype only supplies
// what the level does not.
type EnemyDefinition struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	RadiusFactor float64 `yaml:"radiusFactor"` // размер относительно клетки при масштабе 1
}

// EnemyLibrary is keyed by EnemyDefinition.ID.
var EnemyLibrary = map[string]EnemyDefinition{
	"skeleton": {ID: "skeleton", Name: "Skeleton", RadiusFactor: 0.25},
}
