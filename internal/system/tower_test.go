package system

import (
	"testing"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

func startSingleWave(w *testWorld, hp float64) {
	w.waves.LoadRounds([]defs.RoundDefinition{{Waves: []defs.WaveDefinition{testWave(1, hp, 1.0, 100)}}})
	w.waves.StartNextWave()
	w.towers.StartAll()
}

func TestGemlessTowerStaysIdle(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemColor(-1))
	startSingleWave(w, 1000)

	for i := 0; i < 40; i++ {
		w.clock.Advance(0.1)
		if s := w.ecs.Towers[towerID].State; s != component.TowerIdle {
			t.Fatalf("Expected Idle at %v, got %v", w.clock.Now(), s)
		}
	}
	if w.clock.IsPending(towerID, searchKey) {
		t.Error("A gemless tower must not poll for targets")
	}
}

func TestTowerWithoutRoundDoesNotSearch(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemYellow)
	w.towers.SearchForTarget(towerID)
	if w.ecs.Towers[towerID].State != component.TowerIdle {
		t.Errorf("Expected Idle without an active round, got %v", w.ecs.Towers[towerID].State)
	}
}

func TestYellowTowerAttacks(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, gemID := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemYellow)
	startSingleWave(w, 1000)

	w.clock.Advance(0.5)
	if w.ecs.Towers[towerID].State != component.TowerSearching {
		t.Fatalf("Expected Searching before the first spawn, got %v", w.ecs.Towers[towerID].State)
	}

	w.clock.Advance(1.0)
	tower := w.ecs.Towers[towerID]
	if tower.State != component.TowerAttacking || tower.Target == 0 {
		t.Fatalf("Expected Attacking with a target, got %v target %d", tower.State, tower.Target)
	}
	if !w.ecs.Enemies[tower.Target].Attackers.Has(towerID) {
		t.Error("Expected the tower to be registered as an attacker")
	}
	h := w.ecs.Healths[tower.Target]
	if h.Current != 800 || h.Projected != 800 {
		t.Errorf("Expected 800/800 after one hit, got %v/%v", h.Current, h.Projected)
	}
	gem := w.ecs.Gems[gemID]
	if gem.Charges != 2 {
		t.Errorf("Expected 2 charges, got %d", gem.Charges)
	}
	if !w.clock.IsPending(gemID, rechargeKey) {
		t.Error("Expected the recharge loop to run")
	}
	if w.recorder.count(event.TowerAttack) != 1 || w.recorder.count(event.TowerImpact) != 1 {
		t.Errorf("Expected one attack and one impact, got %d and %d",
			w.recorder.count(event.TowerAttack), w.recorder.count(event.TowerImpact))
	}
}

func TestRedTowerAreaDamage(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemRed)
	startSingleWave(w, 1000)

	w.clock.Advance(1.1)
	target := w.ecs.Towers[towerID].Target
	if target == 0 {
		t.Fatal("Expected the red tower to pick a target")
	}
	h := w.ecs.Healths[target]
	if h.Projected != 850 || h.Current != 1000 {
		t.Fatalf("Expected damage to be projected before impact, got %v/%v", h.Current, h.Projected)
	}

	w.clock.Advance(0.15)
	if h.Current != 850 {
		t.Errorf("Expected 850 after the area impact, got %v", h.Current)
	}
}

func TestKilledTargetIsDropped(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemYellow)
	startSingleWave(w, 1000)

	w.clock.Advance(1.05)
	target := w.ecs.Towers[towerID].Target
	if target == 0 {
		t.Fatal("Expected a target")
	}
	w.combat.TakeDamage(target, 5000, 1)

	if w.ecs.Towers[towerID].Target != 0 {
		t.Error("Expected the tower to drop its dead target")
	}
	if w.ecs.Enemies[target].Attackers.Size() != 0 {
		t.Error("Expected the attacker set to be emptied")
	}
}

func TestUnequipStopsTower(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, gemID := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemYellow)
	startSingleWave(w, 1000)
	w.clock.Advance(1.05)

	if got := w.towers.Unequip(towerID); got != gemID {
		t.Fatalf("Expected gem %d back, got %d", gemID, got)
	}
	tower := w.ecs.Towers[towerID]
	if tower.State != component.TowerIdle || tower.Target != 0 || tower.GemID != 0 {
		t.Errorf("Expected an empty idle tower, got %+v", tower)
	}
	if w.clock.IsPending(towerID, fireKey) || w.clock.IsPending(gemID, rechargeKey) {
		t.Error("Expected fire and recharge callbacks to be cancelled")
	}

	w.towers.Equip(towerID, gemID)
	if !w.clock.IsPending(gemID, rechargeKey) {
		t.Error("Expected recharge to resume for a partly spent gem")
	}
	if tower.State == component.TowerIdle {
		t.Error("Expected the tower to resume searching")
	}
}

func TestFlightTime(t *testing.T) {
	tests := []struct {
		color defs.GemColor
		dist  float64
		want  float64
	}{
		{defs.GemBlue, 0, 0.05},
		{defs.GemBlue, 90, 0.10},
		{defs.GemGreen, 100, 0.24},
		{defs.GemYellow, 49.9, 0.05},
	}
	for _, tt := range tests {
		if got := FlightTime(tt.color, tt.dist); !approx(got, tt.want) {
			t.Errorf("FlightTime(%v, %v): expected %v, got %v", tt.color, tt.dist, tt.want, got)
		}
	}
}

func onlyEnemy(t *testing.T, w *testWorld) types.EntityID {
	t.Helper()
	ids := w.waves.ActiveEnemies()
	if len(ids) != 1 {
		t.Fatalf("Expected one enemy, got %d", len(ids))
	}
	return ids[0]
}

func TestGreenTowerPoisonsAndRetargets(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemGreen)
	startSingleWave(w, 1000)

	w.clock.Advance(1.5)
	enemyID := onlyEnemy(t, w)
	if w.recorder.count(event.TowerAttack) != 1 || w.recorder.count(event.TowerImpact) != 1 {
		t.Fatalf("Expected one attack and one impact, got %d and %d",
			w.recorder.count(event.TowerAttack), w.recorder.count(event.TowerImpact))
	}

	poison, ok := w.ecs.PoisonEffects[enemyID]
	if !ok || len(poison.Ticks) != config.PoisonTicks {
		t.Fatalf("Expected %d queued poison ticks, got %+v", config.PoisonTicks, poison)
	}
	for i, tick := range poison.Ticks {
		if !approx(tick, 40) {
			t.Errorf("Tick %d: expected 40, got %v", i, tick)
		}
	}
	if h := w.ecs.Healths[enemyID]; h.Current != 900 {
		t.Errorf("Expected 900 hp after the hit, got %v", h.Current)
	}

	tower := w.ecs.Towers[towerID]
	if tower.Target != 0 || w.ecs.Enemies[enemyID].Attackers.Has(towerID) {
		t.Error("Expected the green tower to release its target after the shot")
	}
	if tower.State != component.TowerAttacking || !w.clock.IsPending(towerID, fireKey) {
		t.Errorf("Expected the next shot to be scheduled, got %v", tower.State)
	}
}

func TestBlueTowerSlowsAndRetargets(t *testing.T) {
	w := newTestWorld(t, corridor)
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemBlue)
	startSingleWave(w, 1000)

	w.clock.Advance(1.5)
	enemyID := onlyEnemy(t, w)
	if !w.ecs.IsSlowed(enemyID) {
		t.Fatal("Expected the enemy to be slowed")
	}
	if m := w.ecs.SlowEffects[enemyID].Strongest(); m != config.SlowMagnitude {
		t.Errorf("Expected slow magnitude %v, got %v", config.SlowMagnitude, m)
	}
	if h := w.ecs.Healths[enemyID]; h.Current != 900 {
		t.Errorf("Expected 900 hp after the hit, got %v", h.Current)
	}
	if w.ecs.Towers[towerID].Target != 0 || w.ecs.Enemies[enemyID].Attackers.Has(towerID) {
		t.Error("Expected the blue tower to release its target after the shot")
	}
}

func TestYellowTowerWaitsWithEmptyMagazine(t *testing.T) {
	w := newTestWorld(t, corridor)
	_, gemID := w.addTower(grid.Coord{Row: 2, Col: 1}, defs.GemYellow)
	gem := w.ecs.Gems[gemID]
	gem.Charges = 1
	startSingleWave(w, 1000)

	w.clock.Advance(3.2)
	if gem.Charges != 0 {
		t.Fatalf("Expected an empty magazine, got %d charges", gem.Charges)
	}
	times := w.recorder.times(event.TowerAttack)
	if len(times) != 2 {
		t.Fatalf("Expected two shots, got %d at %v", len(times), times)
	}
	want := gem.Definition().Period * config.RechargePenalty
	if gap := times[1] - times[0]; !approx(gap, want) {
		t.Errorf("Expected %v s between shots, got %v", want, gap)
	}
}

func TestTowerDropsTargetOutOfRange(t *testing.T) {
	w := newTestWorld(t, corridor)
	// Над входом: враг уходит из радиуса Ruby за две клетки.
	towerID, _ := w.addTower(grid.Coord{Row: 2, Col: 0}, defs.GemRed)
	startSingleWave(w, 1000)

	w.clock.Advance(1.1)
	enemyID := onlyEnemy(t, w)
	if w.ecs.Towers[towerID].Target != enemyID {
		t.Fatalf("Expected the tower to attack enemy %d", enemyID)
	}

	w.clock.Advance(1.1)
	tower := w.ecs.Towers[towerID]
	if tower.Target != 0 {
		t.Errorf("Expected the target to be dropped, got %d", tower.Target)
	}
	if w.ecs.Enemies[enemyID].Attackers.Has(towerID) {
		t.Error("Expected the tower to leave the attacker set")
	}
	if tower.State != component.TowerSearching || !w.clock.IsPending(towerID, searchKey) {
		t.Errorf("Expected the tower to search again, got %v", tower.State)
	}
	if n := w.recorder.count(event.TowerAttack); n != 1 {
		t.Errorf("Expected a single shot, got %d", n)
	}
}
