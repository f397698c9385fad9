// internal/state/game_state.go
package state

import (
	"fmt"
	"log"
	"math"
	"time"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/ui"
	"go-gem-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const messageDuration = 2 * time.Second

// GameState — состояние игры
type GameState struct {
	sm              *StateMachine
	game            *app.Game
	level           *defs.LevelDefinition
	records         *app.RecordStore
	fontFace        font.Face
	renderer        *render.GridRenderer
	indicator       *ui.StateIndicator
	speedButton     *ui.SpeedButton
	pauseButton     *ui.PauseButton
	waveIndicator   *ui.WaveIndicator
	healthIndicator *ui.PlayerHealthIndicator
	inventory       *ui.InventoryBar
	infoPanel       *ui.InfoPanel
	selectedTower   types.EntityID
	message         string
	messageUntil    time.Time
	lastClickTime   time.Time
}

// mapInvalidator перерисовывает карту, когда меняются флаги клеток.
type mapInvalidator struct {
	renderer *render.GridRenderer
}

func (m mapInvalidator) OnEvent(e event.Event) {
	m.renderer.MarkDirty()
}

func NewGameState(sm *StateMachine, g *app.Game, level *defs.LevelDefinition, records *app.RecordStore) *GameState {
	face := basicfont.Face7x13

	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		PathableColor:   config.PathableColor,
		BuildableColor:  config.BuildableColor,
		OpenColor:       config.OpenColor,
		ClosedColor:     config.ClosedColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}
	renderer := render.NewGridRenderer(g.Grid, config.TileSize, config.MapOffsetX, config.MapOffsetY, config.ScreenWidth, config.ScreenHeight, mapColors)
	g.EventDispatcher.Subscribe(event.TowerBuilt, mapInvalidator{renderer: renderer})

	return &GameState{
		sm:              sm,
		game:            g,
		level:           level,
		records:         records,
		fontFace:        face,
		renderer:        renderer,
		indicator:       ui.NewStateIndicator(config.IndicatorX, config.ButtonY, config.IndicatorRadius),
		speedButton:     ui.NewSpeedButton(config.SpeedButtonX, config.ButtonY, config.ButtonSize, config.SpeedButtonColors),
		pauseButton:     ui.NewPauseButton(config.PauseButtonX, config.ButtonY, config.ButtonSize, config.PauseColor, config.PlayColor),
		waveIndicator:   ui.NewWaveIndicator(config.InventoryOffsetX, 30, face),
		healthIndicator: ui.NewPlayerHealthIndicator(config.HealthIndicatorX, config.HealthIndicatorY, face),
		inventory:       ui.NewInventoryBar(config.InventoryOffsetX, config.InventoryOffsetY, config.InventorySlotSz, face),
		infoPanel:       ui.NewInfoPanel(face),
		lastClickTime:   time.Now(),
	}
}

func (g *GameState) Enter() {
	g.pauseButton.SetPaused(g.game.IsPaused())
}

func (g *GameState) Exit() {}

// Restart перезапускает уровень с начала.
func (g *GameState) Restart() error {
	if err := g.game.LoadLevel(g.level); err != nil {
		return err
	}
	g.renderer.SetGrid(g.game.Grid)
	g.selectedTower = 0
	g.inventory.Selected = -1
	g.infoPanel.Hide()
	return nil
}

func (g *GameState) showMessage(format string, args ...any) {
	g.message = fmt.Sprintf(format, args...)
	g.messageUntil = time.Now().Add(messageDuration)
}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update(g.game.ECS)
	g.speedButton.SetState(g.game.SpeedIndex())

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.handlePauseClick()
		return
	}
	g.handleKeys()

	g.game.Update(deltaTime)
	if g.game.Phase() != component.PlayingState {
		g.sm.SetState(NewResultState(g.sm, g))
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(x, y) {
			g.handleGameClick(x, y)
		}
		g.lastClickTime = time.Now()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleInspectClick(x, y)
	}
}

var gemKeys = map[ebiten.Key]defs.GemColor{
	ebiten.Key1: defs.GemRed,
	ebiten.Key2: defs.GemYellow,
	ebiten.Key3: defs.GemGreen,
	ebiten.Key4: defs.GemBlue,
}

func (g *GameState) handleKeys() {
	for key, color := range gemKeys {
		if inpututil.IsKeyJustPressed(key) {
			if _, err := g.game.CreateGem(color, defs.RankSliver); err != nil {
				g.showMessage("Cannot create gem: %v", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if _, err := g.game.CreateRandomGem(defs.RankChunk); err != nil {
			g.showMessage("Cannot create gem: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.swapSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.StartNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.selectedTower = 0
		g.inventory.Selected = -1
		g.infoPanel.Hide()
	}
}

// swapSelected меняет выбранную ячейку инвентаря с выбранной башней.
func (g *GameState) swapSelected() {
	if g.selectedTower == 0 || g.inventory.Selected < 0 {
		return
	}
	err := g.game.SwapGems(app.InventorySlot(g.inventory.Selected), app.TowerSlot(g.selectedTower))
	if err != nil {
		g.showMessage("Swap failed: %v", err)
		return
	}
	g.inventory.Selected = -1
}

func (g *GameState) clickAllowed(last time.Time) bool {
	return time.Since(last) >= time.Duration(config.ClickCooldown)*time.Millisecond
}

// handleUIClick обрабатывает клики по элементам интерфейса.
// Возвращает false, если клик был не по UI.
func (g *GameState) handleUIClick(x, y int) bool {
	mx, my := float32(x), float32(y)
	switch {
	case g.speedButton.IsClicked(mx, my):
		if g.clickAllowed(g.speedButton.LastToggleTime) {
			g.game.HandleSpeedClick()
		}
		return true
	case g.pauseButton.IsClicked(mx, my):
		if g.clickAllowed(g.pauseButton.LastToggleTime) {
			g.handlePauseClick()
		}
		return true
	case g.indicator.IsClicked(mx, my):
		if g.clickAllowed(g.indicator.LastClickTime) {
			g.indicator.HandleClick()
			g.game.StartNextWave()
		}
		return true
	case g.infoPanel.Contains(x, y):
		return true
	}
	if slot := g.inventory.SlotAt(x, y, config.InventorySlots); slot >= 0 {
		g.inventory.Toggle(slot)
		return true
	}
	return false
}

func (g *GameState) handlePauseClick() {
	g.game.HandlePauseClick()
	g.pauseButton.SetPaused(true)
	g.sm.SetState(NewPauseState(g.sm, g))
}

// handleGameClick: клик по башне выбирает её, клик по пустой клетке строит башню.
func (g *GameState) handleGameClick(x, y int) {
	c, ok := g.renderer.CellAt(x, y)
	if !ok {
		return
	}
	if id := g.game.TowerAt(c); id != 0 {
		g.selectedTower = id
		g.infoPanel.SetTarget(id)
		g.swapSelected()
		return
	}
	id, err := g.game.BuildTower(c)
	if err != nil {
		g.showMessage("Cannot build at %d,%d: %v", c.Row, c.Col, err)
		return
	}
	g.selectedTower = id
	g.infoPanel.SetTarget(id)
	g.swapSelected()
}

// handleInspectClick показывает врага, ближайшего к курсору.
func (g *GameState) handleInspectClick(x, y int) {
	best, bestDist := types.EntityID(0), math.Inf(1)
	for id := range g.game.ECS.Enemies {
		pos, ok := g.game.MovementSystem.PositionAt(id)
		if !ok {
			continue
		}
		sx, sy := g.renderer.ToScreen(pos.X, pos.Y)
		d := math.Hypot(sx-float64(x), sy-float64(y))
		if d < g.renderer.TileSize()*0.5 && d < bestDist {
			best, bestDist = id, d
		}
	}
	if best != 0 {
		g.infoPanel.SetTarget(best)
		return
	}
	g.infoPanel.Hide()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.DrawMap(screen)
	g.renderer.DrawPath(screen, config.PathArrowColor)

	snap := g.game.Snapshot()
	g.drawTowers(screen, snap)
	g.drawEnemies(screen, snap)
	g.drawProjectiles(screen, snap)

	stateColor := config.PhaseColors[snap.Phase]
	g.indicator.Draw(screen, stateColor)
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)

	progress := g.game.WaveProgress()
	g.waveIndicator.Draw(screen, progress.Round, progress.WavesStarted, progress.TotalWaves, progress.TimeToNextWave)
	g.healthIndicator.Draw(screen, snap.Hp, g.game.ECS.PlayerState.MaxHp)
	g.inventory.Draw(screen, g.game.ECS, g.game.Inventory())
	g.infoPanel.Draw(screen, g.game.ECS)
	g.drawHUD(screen, snap)
}

func (g *GameState) drawTowers(screen *ebiten.Image, snap app.Snapshot) {
	ts := g.renderer.TileSize()
	for _, t := range snap.Towers {
		sx, sy := g.renderer.ToScreen(float64(t.Col)+0.5, float64(t.Row)+0.5)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), config.TowerRadius, config.TowerBaseColor, true)
		stroke := config.TowerStrokeColor
		if types.EntityID(t.ID) == g.selectedTower {
			stroke = config.SelectionColor
		}
		vector.StrokeCircle(screen, float32(sx), float32(sy), config.TowerRadius, config.StrokeWidth, stroke, true)
		if t.Color < 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), config.TowerRadius/2, config.GemColors[t.Color], true)
		if types.EntityID(t.ID) == g.selectedTower {
			r := defs.GemColors[t.Color].Range * ts
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(r), 1, config.SelectionColor, true)
		}
	}
}

func (g *GameState) drawEnemies(screen *ebiten.Image, snap app.Snapshot) {
	for _, e := range snap.Enemies {
		sx, sy := g.renderer.ToScreen(e.X, e.Y)
		clr := config.EnemyColor
		switch {
		case e.State != component.EnemyAlive.String():
			clr = config.DyingColor
		case e.Poisoned:
			clr = config.PoisonedColor
		case e.Slowed:
			clr = config.SlowedColor
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), config.EnemyRadius, clr, true)
		if e.MaxHp <= 0 || e.State != component.EnemyAlive.String() {
			continue
		}
		// Полоска здоровья над врагом
		w := float32(config.EnemyRadius * 2)
		bx, by := float32(sx)-w/2, float32(sy)-config.EnemyRadius-6
		vector.DrawFilledRect(screen, bx, by, w, 3, config.ExitColor, false)
		vector.DrawFilledRect(screen, bx, by, w*float32(math.Max(0, e.Hp/e.MaxHp)), 3, config.EntryColor, false)
	}
}

func (g *GameState) drawProjectiles(screen *ebiten.Image, snap app.Snapshot) {
	for _, p := range snap.Projectiles {
		sx, sy := g.renderer.ToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 3, config.GemColors[p.Color], true)
	}
}

func (g *GameState) drawHUD(screen *ebiten.Image, snap app.Snapshot) {
	x, y := config.InventoryOffsetX, config.HealthIndicatorY+140
	lines := []string{
		fmt.Sprintf("Score:  %d", snap.Score),
		fmt.Sprintf("Energy: %d", snap.Energy),
		fmt.Sprintf("Time:   %.1fs", snap.Time),
		fmt.Sprintf("Tower:  %d", g.game.TowerCost()),
		"",
		"1-4 gem  R random",
		"Tab insert  Space wave",
		"P pause",
	}
	for i, l := range lines {
		text.Draw(screen, l, g.fontFace, x, y+i*config.HUDLineHeight, config.TextLightColor)
	}
	if g.message != "" && time.Now().Before(g.messageUntil) {
		text.Draw(screen, g.message, g.fontFace, int(config.MapOffsetX), 20, config.ExitColor)
	}
}

// saveResult записывает итог уровня в хранилище рекордов.
func (g *GameState) saveResult() (app.RunRecord, bool) {
	r := g.game.Result()
	if g.records == nil {
		return r, false
	}
	best, err := g.records.Save(r)
	if err != nil {
		log.Printf("[GameState] failed to save result: %v", err)
	}
	return r, best
}
