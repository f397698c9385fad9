package main

import (
	"testing"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/defs"
	"go-gem-defense/pkg/grid"

	"github.com/gdamore/tcell/v2"
)

const testLevel = `
name: strip
start:
  hp: 3
  energy: 100
pathmap:
  - "bbbbbb"
  - "sooooe"
  - "cccccc"
rounds:
  - waves:
      - hp: 100
        count: 1
        spawnInterval: 1
        period: 10
`

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	level, err := defs.ParseLevel([]byte(testLevel))
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	g, err := app.NewGame(level, 1)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return newViewer(screen, g, level), screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawFrameMap(t *testing.T) {
	v, screen := newTestViewer(t)
	drawFrame(screen, v.game, v.game.Snapshot(), grid.Coord{Row: 2, Col: 5}, "")

	sx, sy := screenPos(v.game.Grid, 1, 0)
	if got := runeAt(screen, sx, sy); got != 'S' {
		t.Errorf("Expected the start glyph, got %q", got)
	}
	ex, ey := screenPos(v.game.Grid, 1, 5)
	if got := runeAt(screen, ex, ey); got != 'E' {
		t.Errorf("Expected the exit glyph, got %q", got)
	}
	cx, cy := screenPos(v.game.Grid, 0, 2)
	if got := runeAt(screen, cx, cy); got != '#' {
		t.Errorf("Expected a closed cell, got %q", got)
	}
	// Верхняя строка карты рисуется первой.
	if sy != mapTop+1 || cy != mapTop+2 {
		t.Errorf("Expected rows to be flipped, got start y %d closed y %d", sy, cy)
	}
}

func TestViewerBuildAndEquip(t *testing.T) {
	v, screen := newTestViewer(t)
	v.cursor = grid.Coord{Row: 2, Col: 2}

	v.handleRune('b')
	if v.message != "" {
		t.Fatalf("Unexpected message after build: %s", v.message)
	}
	v.handleRune('2')
	v.handleRune('e')
	if v.message != "" {
		t.Fatalf("Unexpected message after equip: %s", v.message)
	}
	tower := v.game.TowerAt(v.cursor)
	if gem := v.game.ECS.Gems[v.game.ECS.Towers[tower].GemID]; gem == nil || gem.Color != defs.GemYellow {
		t.Fatalf("Expected a yellow gem on the tower")
	}

	drawFrame(screen, v.game, v.game.Snapshot(), v.cursor, v.message)
	x, y := screenPos(v.game.Grid, 2, 2)
	if got := runeAt(screen, x, y); got != 'T' {
		t.Errorf("Expected a tower glyph, got %q", got)
	}

	v.handleRune('u')
	if v.game.ECS.Towers[tower].GemID != 0 {
		t.Error("Expected the gem back in the inventory")
	}
}

func TestViewerReportsErrors(t *testing.T) {
	v, _ := newTestViewer(t)
	v.cursor = v.game.Grid.Exit
	v.handleRune('b')
	if v.message == "" {
		t.Error("Expected an error message for building on the exit")
	}
	v.handleRune('e')
	if v.message == "" {
		t.Error("Expected an error message without a tower")
	}
}

func TestViewerCursorAndQuit(t *testing.T) {
	v, _ := newTestViewer(t)
	start := v.cursor
	v.moveCursor(1, 0)
	if v.cursor.Row != start.Row+1 {
		t.Errorf("Expected the cursor to move up, got %v", v.cursor)
	}
	v.moveCursor(0, -1)
	if v.cursor != (grid.Coord{Row: start.Row + 1, Col: 0}) {
		t.Errorf("Expected the cursor to stay inside the map, got %v", v.cursor)
	}
	if v.handleRune('q') {
		t.Error("Expected q to quit")
	}
	if !v.handleRune('s') || v.game.SpeedIndex() != 1 {
		t.Error("Expected s to switch the speed")
	}
}
