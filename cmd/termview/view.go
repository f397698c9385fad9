// cmd/termview/view.go
package main

import (
	"fmt"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/defs"
	"go-gem-defense/pkg/grid"

	"github.com/gdamore/tcell/v2"
)

// Каждая клетка занимает два столбца терминала, строка 0 карты внизу.
const (
	cellWidth = 2
	mapLeft   = 1
	mapTop    = 1
	hudGap    = 3
)

var (
	styleDefault  = tcell.StyleDefault
	styleClosed   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleBuild    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleOpen     = tcell.StyleDefault.Foreground(tcell.ColorOliveDrab)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleExit     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDying    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSlowed   = tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue).Bold(true)
	stylePoisoned = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEmptyTwr = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	gemStyles     = [defs.NumGemColors]tcell.Style{
		defs.GemRed:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		defs.GemYellow: tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true),
		defs.GemGreen:  tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		defs.GemBlue:   tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	}
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// cellGlyph returns the two-column picture of an empty cell.
func cellGlyph(g *grid.Grid, c *grid.Cell) (string, tcell.Style) {
	switch {
	case c.Coord == g.Start:
		return "S ", styleStart
	case c.Coord == g.Exit:
		return "E ", styleExit
	case c.Pathable && c.Buildable:
		return ". ", styleOpen
	case c.Pathable:
		return ": ", stylePath
	case c.Buildable:
		return "+ ", styleBuild
	}
	return "##", styleClosed
}

// screenPos переводит клетку в позицию терминала.
func screenPos(g *grid.Grid, row, col int) (int, int) {
	return mapLeft + col*cellWidth, mapTop + (g.Height - 1 - row)
}

// drawFrame рисует карту и HUD по снимку. Курсор выделяется инверсией.
func drawFrame(s tcell.Screen, g *app.Game, snap app.Snapshot, cursor grid.Coord, message string) {
	s.Clear()
	gr := g.Grid

	for i := range gr.Cells {
		c := &gr.Cells[i]
		glyph, style := cellGlyph(gr, c)
		x, y := screenPos(gr, c.Row, c.Col)
		drawText(s, x, y, style, glyph)
	}

	for _, t := range snap.Towers {
		x, y := screenPos(gr, t.Row, t.Col)
		if t.Color < 0 {
			drawText(s, x, y, styleEmptyTwr, "[]")
			continue
		}
		drawText(s, x, y, gemStyles[t.Color], fmt.Sprintf("T%d", t.Rank+1))
	}

	for _, e := range snap.Enemies {
		row, col := int(e.Y), int(e.X)
		if row < 0 || row >= gr.Height || col < 0 || col >= gr.Width {
			continue
		}
		style := styleEnemy
		switch {
		case e.State != "alive":
			style = styleDying
		case e.Poisoned:
			style = stylePoisoned
		case e.Slowed:
			style = styleSlowed
		}
		x, y := screenPos(gr, row, col)
		s.SetContent(x, y, 'o', nil, style)
	}

	for _, p := range snap.Projectiles {
		row, col := int(p.Y), int(p.X)
		if row < 0 || row >= gr.Height || col < 0 || col >= gr.Width {
			continue
		}
		x, y := screenPos(gr, row, col)
		s.SetContent(x+1, y, '*', nil, gemStyles[p.Color])
	}

	cx, cy := screenPos(gr, cursor.Row, cursor.Col)
	mainc, _, style, _ := s.GetContent(cx, cy)
	s.SetContent(cx, cy, mainc, nil, style.Reverse(true))
	second, _, style2, _ := s.GetContent(cx+1, cy)
	s.SetContent(cx+1, cy, second, nil, style2.Reverse(true))

	drawHUD(s, g, snap, mapLeft+gr.Width*cellWidth+hudGap)
	if message != "" {
		drawText(s, mapLeft, mapTop+gr.Height+1, styleMessage, message)
	}
}

func drawHUD(s tcell.Screen, g *app.Game, snap app.Snapshot, x int) {
	progress := g.WaveProgress()
	lines := []string{
		fmt.Sprintf("%s  %s", g.Level.Name, snap.Phase),
		fmt.Sprintf("Time   %6.1fs  x%.0f", snap.Time, g.SpeedMultiplier),
		fmt.Sprintf("HP     %d/%d", snap.Hp, g.ECS.PlayerState.MaxHp),
		fmt.Sprintf("Energy %d", snap.Energy),
		fmt.Sprintf("Score  %d", snap.Score),
		fmt.Sprintf("Round  %d  wave %d/%d", progress.Round, progress.WavesStarted, progress.TotalWaves),
		fmt.Sprintf("Next   %.1fs", progress.TimeToNextWave),
		fmt.Sprintf("Alive  %d", g.EnemiesAlive()),
		"",
		"Gems:",
	}
	y := mapTop
	for _, l := range lines {
		drawText(s, x, y, styleDefault, l)
		y++
	}
	for i, id := range g.Inventory() {
		gem, ok := g.ECS.Gems[id]
		if !ok {
			drawText(s, x, y, styleClosed, fmt.Sprintf(" %d  -", i+1))
			y++
			continue
		}
		drawText(s, x, y, gemStyles[gem.Color], fmt.Sprintf(" %d  %s %s", i+1, gem.Rank, gem.Definition().Name))
		y++
	}
	y++
	for _, l := range []string{
		"arrows move   b build",
		"1-4 gem   e equip first gem",
		"u unequip   space wave",
		"s speed  p pause  r restart",
		"q quit",
	} {
		drawText(s, x, y, styleClosed, l)
		y++
	}
	if g.IsPaused() {
		drawText(s, x, y+1, styleMessage, "PAUSED")
	}
}
