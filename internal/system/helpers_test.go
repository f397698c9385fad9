package system

import (
	"testing"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"

	"github.com/zyedidia/generic/mapset"
)

// corridor: start at row 1 col 0, exit at row 1 col 7, buildable rows around it.
var corridor = []string{
	"bbbbbbbb",
	"sppppppe",
	"bbbbbbbb",
}

type recordedEvent struct {
	event.Event
	At float64
}

type eventRecorder struct {
	clock  *clock.Clock
	events []recordedEvent
}

func (r *eventRecorder) OnEvent(e event.Event) {
	r.events = append(r.events, recordedEvent{Event: e, At: r.clock.Now()})
}

func (r *eventRecorder) times(t event.EventType) []float64 {
	var out []float64
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e.At)
		}
	}
	return out
}

func (r *eventRecorder) count(t event.EventType) int {
	return len(r.times(t))
}

type testWorld struct {
	ecs         *entity.ECS
	clock       *clock.Clock
	grid        *grid.Grid
	dispatcher  *event.Dispatcher
	recorder    *eventRecorder
	player      *PlayerSystem
	combat      *CombatSystem
	status      *StatusEffectSystem
	movement    *MovementSystem
	waves       *WaveSystem
	projectiles *ProjectileSystem
	area        *AreaAttackSystem
	towers      *TowerSystem
}

func newTestWorld(t *testing.T, rows []string) *testWorld {
	t.Helper()
	g, err := grid.ParsePathmap(rows)
	if err != nil {
		t.Fatalf("ParsePathmap failed: %v", err)
	}
	if err := grid.ComputePathing(g); err != nil {
		t.Fatalf("ComputePathing failed: %v", err)
	}

	w := &testWorld{
		ecs:        entity.NewECS(),
		clock:      clock.New(),
		grid:       g,
		dispatcher: event.NewDispatcher(),
	}
	w.ecs.PlayerState.Hp = 20
	w.ecs.PlayerState.MaxHp = 20
	w.recorder = &eventRecorder{clock: w.clock}
	w.dispatcher.SubscribeAll(event.AllTypes, w.recorder)

	w.player = NewPlayerSystem(w.ecs, w.dispatcher)
	w.combat = NewCombatSystem(w.ecs, w.clock, w.player, w.dispatcher)
	w.status = NewStatusEffectSystem(w.ecs, w.clock, w.combat, w.dispatcher)
	w.movement = NewMovementSystem(w.ecs, w.clock, g, w.combat, w.player, w.dispatcher)
	w.waves = NewWaveSystem(w.ecs, w.clock, g, w.movement, w.dispatcher)
	w.projectiles = NewProjectileSystem(w.ecs, w.clock, g, w.combat, w.status, w.movement, w.dispatcher)
	w.area = NewAreaAttackSystem(w.ecs, w.clock, g, w.combat, w.movement, w.waves, w.dispatcher)
	w.towers = NewTowerSystem(w.ecs, w.clock, g, w.combat, w.movement, w.waves, w.projectiles, w.area, w.dispatcher)
	return w
}

// addEnemy registers a standing, alive enemy on the start cell without a wave.
func (w *testWorld) addEnemy(hp, armor float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Enemies[id] = &component.Enemy{
		Type:       "skeleton",
		Armor:      armor,
		Bounty:     5,
		Score:      10,
		ExitDamage: 1,
		State:      component.EnemyAlive,
		Attackers:  mapset.New[types.EntityID](),
	}
	w.ecs.Healths[id] = &component.Health{Max: hp, Current: hp, Projected: hp}
	w.ecs.Movements[id] = &component.Movement{
		BaseSpeed: 0.5,
		CurrSpeed: 0.5,
		Cell:      w.grid.Start,
		Next:      w.grid.Start,
	}
	return id
}

func testWave(count int, hp, interval, period float64) defs.WaveDefinition {
	return defs.WaveDefinition{
		Enemy:         "skeleton",
		Hp:            hp,
		Speed:         0.5,
		Scale:         1,
		Bounty:        5,
		Score:         10,
		Count:         count,
		SpawnInterval: interval,
		Period:        period,
		ExitDamage:    1,
	}
}

func (w *testWorld) addTower(cell grid.Coord, color defs.GemColor) (types.EntityID, types.EntityID) {
	towerID := w.ecs.NewEntity()
	w.ecs.Towers[towerID] = &component.Tower{Cell: cell}
	w.grid.At(cell).Tower = towerID

	var gemID types.EntityID
	if color.Valid() {
		gemID = w.ecs.NewEntity()
		gem := &component.Gem{Color: color, Rank: 0}
		if gem.Definition().Attack == defs.AttackAmmo {
			gem.Charges = 3
		}
		w.ecs.Gems[gemID] = gem
		w.ecs.Towers[towerID].GemID = gemID
	}
	return towerID, gemID
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
