// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 16
	columnSpacing  = 220
)

// InfoPanel displays information about a selected tower or enemy.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID
	fontFace     font.Face
	currentY     float64
	targetY      float64
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - config.InfoPanelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains сообщает, лежит ли точка на видимой панели.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Update анимирует панель и закрывает её, когда цель исчезла.
func (p *InfoPanel) Update(ecs *entity.ECS) {
	if p.IsVisible && p.TargetEntity != 0 {
		_, isTower := ecs.Towers[p.TargetEntity]
		_, isEnemy := ecs.Enemies[p.TargetEntity]
		if !isTower && !isEnemy {
			p.Hide()
		}
	}

	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}

		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetEntity = 0
		}
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ecs *entity.ECS) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+config.InfoPanelHeight-panelMargin,
	)
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), config.PanelColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	if p.TargetEntity == 0 {
		return
	}
	p.drawEntityInfo(screen, ecs, panelRect.Min.X+15, panelRect.Min.Y+20)
}

func (p *InfoPanel) drawEntityInfo(screen *ebiten.Image, ecs *entity.ECS, startX, startY int) {
	if _, ok := ecs.Towers[p.TargetEntity]; ok {
		p.drawTowerInfo(screen, ecs, startX, startY)
		return
	}
	if enemy, ok := ecs.Enemies[p.TargetEntity]; ok {
		title := enemy.Type
		if def, ok := defs.EnemyLibrary[enemy.Type]; ok {
			title = def.Name
		}
		text.Draw(screen, title, p.fontFace, startX, startY, config.TextLightColor)
		p.drawEnemyInfo(screen, ecs, startX, startY+lineHeight)
	}
}

func (p *InfoPanel) drawTowerInfo(screen *ebiten.Image, ecs *entity.ECS, startX, startY int) {
	tower := ecs.Towers[p.TargetEntity]
	gem, ok := ecs.Gems[tower.GemID]
	if !ok {
		text.Draw(screen, "Empty tower", p.fontFace, startX, startY, config.TextLightColor)
		text.Draw(screen, "Press Tab to insert the selected gem", p.fontFace, startX, startY+lineHeight, config.TextLightColor)
		return
	}

	def := gem.Definition()
	title := fmt.Sprintf("%s %s", gem.Rank, def.Name)
	text.Draw(screen, title, p.fontFace, startX, startY, config.GemColors[gem.Color])

	y := startY + lineHeight
	col2X := startX + columnSpacing
	text.Draw(screen, fmt.Sprintf("Damage: %.0f", gem.Damage()), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("State: %s", tower.State), p.fontFace, col2X, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Period: %.2fs", def.Period), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Target: %d", tower.Target), p.fontFace, col2X, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Range: %.1f", def.Range), p.fontFace, startX, y, config.TextLightColor)
	if def.Attack == defs.AttackAmmo {
		text.Draw(screen, fmt.Sprintf("Charges: %d/%d", gem.Charges, config.MaxCharges), p.fontFace, col2X, y, config.TextLightColor)
	}
}

func (p *InfoPanel) drawEnemyInfo(screen *ebiten.Image, ecs *entity.ECS, startX, startY int) {
	enemy := ecs.Enemies[p.TargetEntity]
	y := startY
	col1X := startX
	col2X := startX + columnSpacing

	if health, ok := ecs.Healths[p.TargetEntity]; ok {
		healthStr := fmt.Sprintf("Health: %.0f / %.0f (%.0f)", health.Current, health.Max, health.Projected)
		text.Draw(screen, healthStr, p.fontFace, col1X, y, config.TextLightColor)
	}
	if move, ok := ecs.Movements[p.TargetEntity]; ok {
		speedStr := fmt.Sprintf("Hop: %.2fs", move.CurrSpeed)
		text.Draw(screen, speedStr, p.fontFace, col2X, y, config.TextLightColor)
	}
	y += lineHeight

	text.Draw(screen, fmt.Sprintf("Armor: %.0f", enemy.Armor), p.fontFace, col1X, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("State: %s", enemy.State), p.fontFace, col2X, y, config.TextLightColor)
	y += lineHeight

	var effects string
	if ecs.IsSlowed(p.TargetEntity) {
		effects += "slowed "
	}
	if ecs.IsPoisoned(p.TargetEntity) {
		effects += "poisoned"
	}
	if effects != "" {
		text.Draw(screen, effects, p.fontFace, col1X, y, config.TextLightColor)
	}
}
