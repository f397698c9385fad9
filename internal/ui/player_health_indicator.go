// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCols          = 5
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
)

var (
	healthHighColor  = color.RGBA{60, 100, 255, 255}
	healthLowColor   = color.RGBA{220, 40, 40, 255}
	healthEmptyColor = color.RGBA{0, 0, 0, 255}
)

// PlayerHealthIndicator отображает здоровье игрока.
type PlayerHealthIndicator struct {
	X, Y float32
	font font.Face
}

// NewPlayerHealthIndicator создает новый индикатор здоровья.
func NewPlayerHealthIndicator(x, y float32, face font.Face) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y, font: face}
}

// Draw рисует индикатор здоровья игрока в виде сетки кружков.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, health, maxHealth int) {
	halfHealth := maxHealth / 2
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)

	for j := 0; j < maxHealth; j++ {
		row := j / HealthCols
		col := j % HealthCols
		cx := i.X + float32(col)*step + HealthCircleRadius
		cy := i.Y + float32(row)*step + HealthCircleRadius

		clr := healthEmptyColor
		if j < health {
			// Пока здоровья больше половины, "избыток" синий, остальное красное
			if health > halfHealth && j < health-halfHealth {
				clr = healthHighColor
			} else {
				clr = healthLowColor
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, clr, true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, color.White, true)
	}

	// Текстовое отображение здоровья над сеткой
	healthText := strconv.Itoa(health) + "/" + strconv.Itoa(maxHealth)
	text.Draw(screen, healthText, i.font, int(i.X), int(i.Y)-8, color.White)
}
