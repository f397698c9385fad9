// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton переключает скорость симуляции x1 → x2 → x4.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)

	clr := b.StateColors[b.CurrentState]

	// Параметры треугольников
	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	// Левый треугольник
	fillTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, clr)
	// Правый треугольник
	fillTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, clr)
	vector.StrokeCircle(screen, b.X, b.Y, b.Size*1.5, 1, color.White, true)
}

// IsClicked использует круг для определения попадания, так как форма сложная.
func (b *SpeedButton) IsClicked(mx, my float32) bool {
	dx, dy := mx-b.X, my-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

// SetState синхронизирует кнопку со скоростью игры.
func (b *SpeedButton) SetState(index int) {
	if index < 0 || index >= len(b.StateColors) || index == b.CurrentState {
		return
	}
	b.CurrentState = index
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}
