// internal/app/game.go
package app

import (
	"fmt"
	"log"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/system"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
	"go-gem-defense/pkg/grid"

	"github.com/google/uuid"
)

// Game holds the simulation of one level and the systems that drive it.
// It is not safe for concurrent use.
type Game struct {
	RunID              uuid.UUID
	Level              *defs.LevelDefinition
	Grid               *grid.Grid
	ECS                *entity.ECS
	Clock              *clock.Clock
	PlayerSystem       *system.PlayerSystem
	CombatSystem       *system.CombatSystem
	StatusEffectSystem *system.StatusEffectSystem
	MovementSystem     *system.MovementSystem
	WaveSystem         *system.WaveSystem
	ProjectileSystem   *system.ProjectileSystem
	AreaAttackSystem   *system.AreaAttackSystem
	TowerSystem        *system.TowerSystem
	Rng                *utils.PRNGService
	SpeedMultiplier    float64

	// EventDispatcher — внешний диспетчер. Подписчики переживают LoadLevel.
	EventDispatcher *event.Dispatcher
	// внутренний диспетчер мира; системы подписаны на него
	world *event.Dispatcher

	inventory [config.InventorySlots]types.EntityID
	isPaused  bool
}

// eventForwarder пересылает события мира во внешний диспетчер.
type eventForwarder struct {
	out *event.Dispatcher
}

func (f eventForwarder) OnEvent(e event.Event) {
	f.out.Dispatch(e)
}

// NewGame собирает мир уровня. seed задаёт генератор случайных самоцветов,
// 0 означает текущее время.
func NewGame(level *defs.LevelDefinition, seed int64) (*Game, error) {
	g, err := newGame(level, event.NewDispatcher(), utils.NewPRNGService(seed))
	if err != nil {
		return nil, err
	}
	g.WaveSystem.SetGameContext(g)
	return g, nil
}

func newGame(level *defs.LevelDefinition, out *event.Dispatcher, rng *utils.PRNGService) (*Game, error) {
	if level == nil {
		return nil, fmt.Errorf("new game: %w", defs.ErrInvalidLevel)
	}
	gr, err := level.BuildGrid()
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", level.Name, err)
	}

	ecs := entity.NewECS()
	ecs.PlayerState.Hp = level.Start.Hp
	ecs.PlayerState.MaxHp = level.Start.Hp
	ecs.PlayerState.Energy = level.Start.Energy

	clk := clock.New()
	world := event.NewDispatcher()
	g := &Game{
		RunID:           uuid.New(),
		Level:           level,
		Grid:            gr,
		ECS:             ecs,
		Clock:           clk,
		Rng:             rng,
		SpeedMultiplier: 1.0,
		EventDispatcher: out,
		world:           world,
	}
	g.PlayerSystem = system.NewPlayerSystem(ecs, world)
	g.CombatSystem = system.NewCombatSystem(ecs, clk, g.PlayerSystem, world)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs, clk, g.CombatSystem, world)
	g.MovementSystem = system.NewMovementSystem(ecs, clk, gr, g.CombatSystem, g.PlayerSystem, world)
	g.WaveSystem = system.NewWaveSystem(ecs, clk, gr, g.MovementSystem, world)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, clk, gr, g.CombatSystem, g.StatusEffectSystem, g.MovementSystem, world)
	g.AreaAttackSystem = system.NewAreaAttackSystem(ecs, clk, gr, g.CombatSystem, g.MovementSystem, g.WaveSystem, world)
	g.TowerSystem = system.NewTowerSystem(ecs, clk, gr, g.CombatSystem, g.MovementSystem, g.WaveSystem, g.ProjectileSystem, g.AreaAttackSystem, world)
	g.WaveSystem.LoadRounds(level.Rounds)

	world.SubscribeAll(event.AllTypes, eventForwarder{out: out})
	return g, nil
}

// LoadLevel заменяет текущий мир новым. Новый мир собирается целиком,
// и только при успехе подменяет старый. Внешние подписчики сохраняются.
func (g *Game) LoadLevel(level *defs.LevelDefinition) error {
	fresh, err := newGame(level, g.EventDispatcher, g.Rng)
	if err != nil {
		log.Printf("[Game] level load rejected: %v", err)
		return err
	}
	*g = *fresh
	g.WaveSystem.SetGameContext(g)
	log.Printf("[Game] level %q loaded (%dx%d, %d waves)", level.Name, g.Grid.Width, g.Grid.Height, g.WaveSystem.TotalWaves())
	return nil
}

// Update progresses the game state by one frame.
func (g *Game) Update(deltaTime float64) {
	if g.isPaused || g.ECS.GameState != component.PlayingState || deltaTime <= 0 {
		return
	}
	g.Clock.Advance(deltaTime * g.SpeedMultiplier)
}

// StartNextWave запускает поиск целей у башен и следующую волну текущего раунда.
func (g *Game) StartNextWave() {
	if g.ECS.GameState != component.PlayingState {
		return
	}
	if g.ECS.CurrentRound() == nil {
		return
	}
	g.TowerSystem.StartAll()
	g.WaveSystem.StartNextWave()
}

// HandleSpeedClick переключает скорость x1 → x2 → x4 → x1.
func (g *Game) HandleSpeedClick() {
	switch g.SpeedMultiplier {
	case 1.0:
		g.SpeedMultiplier = 2.0
	case 2.0:
		g.SpeedMultiplier = 4.0
	default:
		g.SpeedMultiplier = 1.0
	}
}

// SpeedIndex returns 0, 1 or 2 for x1, x2 and x4.
func (g *Game) SpeedIndex() int {
	switch g.SpeedMultiplier {
	case 2.0:
		return 1
	case 4.0:
		return 2
	}
	return 0
}

func (g *Game) HandlePauseClick() {
	g.isPaused = !g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

// Phase returns whether the level is still being played, won or lost.
func (g *Game) Phase() component.GameState {
	return g.ECS.GameState
}

// GetGameTime returns the simulated time in seconds.
func (g *Game) GetGameTime() float64 {
	return g.Clock.Now()
}

// WaveProgress — данные для строки волн в HUD.
type WaveProgress struct {
	Round          int
	WavesStarted   int
	TotalWaves     int
	TimeToNextWave float64
	Incoming       int
}

func (g *Game) WaveProgress() WaveProgress {
	p := WaveProgress{
		WavesStarted:   g.WaveSystem.WavesStarted(),
		TotalWaves:     g.WaveSystem.TotalWaves(),
		TimeToNextWave: g.WaveSystem.TimeToNextWave(),
		Incoming:       g.WaveSystem.IncomingEnemies(),
	}
	if round := g.ECS.CurrentRound(); round != nil {
		p.Round = round.Number
	} else {
		p.Round = len(g.Level.Rounds)
	}
	return p
}

// EnemiesAlive считает врагов, которых ещё можно атаковать.
func (g *Game) EnemiesAlive() int {
	n := 0
	for _, enemy := range g.ECS.Enemies {
		if enemy.IsAlive() {
			n++
		}
	}
	return n
}
