package system

import (
	"testing"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/event"
)

func TestSlowStrongestWins(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(100, 0)

	w.status.ApplySlow(id, 0.5, 1.0)
	w.status.ApplySlow(id, 0.8, 3.0)
	if got := w.status.SpeedMultiplier(id); !approx(got, 1/0.5) {
		t.Fatalf("Expected multiplier %v, got %v", 1/0.5, got)
	}
	if got := w.ecs.Movements[id].CurrSpeed; !approx(got, 1.0) {
		t.Errorf("Expected current speed 1.0, got %v", got)
	}

	w.clock.Advance(1.5)
	if got := w.status.SpeedMultiplier(id); !approx(got, 1/0.8) {
		t.Errorf("Expected multiplier %v after the 0.5 slow expired, got %v", 1/0.8, got)
	}

	w.clock.Advance(2)
	if got := w.ecs.Movements[id].CurrSpeed; !approx(got, 0.5) {
		t.Errorf("Expected base speed after all slows expired, got %v", got)
	}
	if w.ecs.IsSlowed(id) {
		t.Error("Expected enemy to no longer be slowed")
	}
}

func TestPoisonOverwrite(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(1000, 0)

	w.status.ApplyPoison(id, 10, 3)
	w.status.ApplyPoison(id, 5, 5)
	w.status.ApplyPoison(id, 20, 2)

	want := []float64{20, 20, 10, 5, 5}
	got := w.ecs.PoisonEffects[id].Ticks
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tick %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPoisonTicksIgnoreArmor(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(100, 50)
	w.status.ApplyPoison(id, 10, 2)

	w.clock.Advance(1.0)
	h := w.ecs.Healths[id]
	if h.Current != 90 || h.Projected != 90 {
		t.Fatalf("Expected 90/90 after one tick, got %v/%v", h.Current, h.Projected)
	}

	w.clock.Advance(1.0)
	if h.Current != 80 {
		t.Errorf("Expected 80 after two ticks, got %v", h.Current)
	}
	if w.recorder.count(event.PoisonCleared) != 1 {
		t.Errorf("Expected PoisonCleared once, got %d", w.recorder.count(event.PoisonCleared))
	}
	if w.ecs.IsPoisoned(id) {
		t.Error("Expected poison to be gone")
	}

	// A new application restarts the loop.
	w.status.ApplyPoison(id, 10, 1)
	w.clock.Advance(1.0)
	if h.Current != 70 {
		t.Errorf("Expected 70 after a fresh poison, got %v", h.Current)
	}
}

func TestPoisonKillStopsLoop(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(15, 0)
	w.status.ApplyPoison(id, 10, 5)

	w.clock.Advance(2.0)
	if w.ecs.Enemies[id].State != component.EnemyDying {
		t.Fatalf("Expected enemy to die from poison, got %v", w.ecs.Enemies[id].State)
	}
	if w.clock.IsPending(id, poisonKey) {
		t.Error("Expected no poison tick after death")
	}
}
