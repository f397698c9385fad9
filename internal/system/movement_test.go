package system

import (
	"testing"

	"go-gem-defense/pkg/grid"
)

var openField = []string{
	"oooooooo",
	"sooooooe",
	"oooooooo",
}

func TestMovementHopsAlongPath(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(100, 0)
	w.movement.Begin(id)

	move := w.ecs.Movements[id]
	if !move.Moving || move.Next != (grid.Coord{Row: 1, Col: 1}) {
		t.Fatalf("Expected a hop toward (1,1), got moving=%v next=%v", move.Moving, move.Next)
	}
	if w.ecs.Enemies[id].TravelDist != 1 {
		t.Errorf("Expected travel distance 1, got %d", w.ecs.Enemies[id].TravelDist)
	}

	w.clock.Advance(0.25)
	pos, ok := w.movement.PositionAt(id)
	if !ok || !approx(pos.X, 1.0) || !approx(pos.Y, 1.5) {
		t.Errorf("Expected mid-hop position (1.0, 1.5), got %+v", pos)
	}

	w.clock.Advance(1.0)
	if move.Cell != (grid.Coord{Row: 1, Col: 2}) {
		t.Errorf("Expected to stand at (1,2), got %v", move.Cell)
	}
	if w.ecs.Enemies[id].TravelDist != 3 {
		t.Errorf("Expected travel distance 3, got %d", w.ecs.Enemies[id].TravelDist)
	}
}

func TestSlowDoesNotChangeHopInFlight(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(100, 0)
	w.movement.Begin(id)
	move := w.ecs.Movements[id]

	w.clock.Advance(0.1)
	w.status.ApplySlow(id, 0.5, 10)
	if move.HopDuration != 0.5 {
		t.Fatalf("Expected the current hop to keep 0.5 s, got %v", move.HopDuration)
	}

	w.clock.Advance(0.4)
	if move.Cell != (grid.Coord{Row: 1, Col: 1}) {
		t.Fatalf("Expected the hop to land on time, got %v", move.Cell)
	}
	if move.HopDuration != 1.0 {
		t.Errorf("Expected the next hop to take 1.0 s, got %v", move.HopDuration)
	}
}

func TestMovementPicksUpReroute(t *testing.T) {
	w := newTestWorld(t, openField)
	id := w.addEnemy(100, 0)
	w.movement.Begin(id)
	move := w.ecs.Movements[id]
	target := move.Next

	// Block the cell the enemy is walking into.
	if err := w.grid.SetFlags(target, false, false); err != nil {
		t.Fatalf("SetFlags failed: %v", err)
	}
	if err := grid.ComputePathing(w.grid); err != nil {
		t.Fatalf("ComputePathing failed: %v", err)
	}

	w.clock.Advance(0.5)
	if move.Cell != target {
		t.Fatalf("Expected the hop to finish on %v, got %v", target, move.Cell)
	}
	want := grid.Coord{Row: 1, Col: 2}
	if move.Next != want {
		t.Errorf("Expected fallback step to %v, got %v", want, move.Next)
	}
}

func TestEnemyReachesExit(t *testing.T) {
	w := newTestWorld(t, corridor)
	id := w.addEnemy(100, 0)
	w.movement.Begin(id)

	w.clock.Advance(3.5)
	if w.ecs.Enemies[id].State.String() != "reached-exit" {
		t.Fatalf("Expected reached-exit, got %v", w.ecs.Enemies[id].State)
	}
	if w.ecs.PlayerState.Hp != 19 {
		t.Errorf("Expected HP 19, got %d", w.ecs.PlayerState.Hp)
	}

	w.clock.Advance(1.0)
	if _, ok := w.ecs.Enemies[id]; ok {
		t.Error("Expected the enemy to despawn one second after the exit")
	}
}
