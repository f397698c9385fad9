// internal/event/types.go
package event

import (
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

const (
	EnemySpawned     EventType = "EnemySpawned"
	EnemyMoved       EventType = "EnemyMoved" // враг начал шаг в соседнюю клетку
	EnemyDamaged     EventType = "EnemyDamaged"
	EnemyKilled      EventType = "EnemyKilled"
	EnemyReachedExit EventType = "EnemyReachedExit"
	EnemyDespawned   EventType = "EnemyDespawned"

	SlowApplied   EventType = "SlowApplied"
	PoisonApplied EventType = "PoisonApplied"
	PoisonCleared EventType = "PoisonCleared"

	TowerBuilt  EventType = "TowerBuilt"
	TowerAttack EventType = "TowerAttack" // выстрел
	TowerImpact EventType = "TowerImpact" // попадание

	GemCreated  EventType = "GemCreated"
	GemsSwapped EventType = "GemsSwapped"

	ScoreChanged  EventType = "ScoreChanged"
	EnergyChanged EventType = "EnergyChanged"
	HpChanged     EventType = "HpChanged"

	WaveStarted    EventType = "WaveStarted"
	WaveDepleted   EventType = "WaveDepleted"
	RoundCompleted EventType = "RoundCompleted"
	WaveTimerTick  EventType = "WaveTimerTick"

	GameOver       EventType = "GameOver"
	LevelCompleted EventType = "LevelCompleted"
)

// EnemyData — данные для событий жизненного цикла врага.
type EnemyData struct {
	EnemyID types.EntityID
	WaveID  types.EntityID
	Cell    grid.Coord
}

// MoveData is sent with EnemyMoved.
type MoveData struct {
	EnemyID  types.EntityID
	From, To grid.Coord
	Duration float64
}

// DamageData is sent with EnemyDamaged.
type DamageData struct {
	EnemyID types.EntityID
	Amount  float64
	Hp      float64
}

// EffectData is sent with SlowApplied, PoisonApplied and PoisonCleared.
type EffectData struct {
	EnemyID   types.EntityID
	Magnitude float64
	Ticks     int
}

// TowerData is sent with TowerBuilt.
type TowerData struct {
	TowerID types.EntityID
	Cell    grid.Coord
}

// AttackData is sent with TowerAttack and TowerImpact.
type AttackData struct {
	TowerID  types.EntityID
	TargetID types.EntityID
	Color    defs.GemColor
	Damage   float64
}

// GemData is sent with GemCreated.
type GemData struct {
	GemID types.EntityID
	Color defs.GemColor
	Rank  defs.GemRank
	Slot  int
}

// ValueData is sent with ScoreChanged, EnergyChanged and HpChanged.
type ValueData struct {
	Value int
	Delta int
}

// WaveData is sent with the wave and round events.
type WaveData struct {
	WaveID    types.EntityID
	Number    int
	Round     int
	Remaining float64 // секунд до следующей волны (WaveTimerTick)
}

// AllTypes lists every event type in the order they are declared above.
var AllTypes = []EventType{
	EnemySpawned, EnemyMoved, EnemyDamaged, EnemyKilled, EnemyReachedExit, EnemyDespawned,
	SlowApplied, PoisonApplied, PoisonCleared,
	TowerBuilt, TowerAttack, TowerImpact,
	GemCreated, GemsSwapped,
	ScoreChanged, EnergyChanged, HpChanged,
	WaveStarted, WaveDepleted, RoundCompleted, WaveTimerTick,
	GameOver, LevelCompleted,
}
