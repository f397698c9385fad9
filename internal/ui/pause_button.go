// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type PauseButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	IsPaused       bool
	PauseColor     color.Color
	PlayColor      color.Color
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	rectSize := b.Size * float32(scale)

	if b.IsPaused {
		// Треугольник (play)
		fillTriangle(screen, b.X-rectSize, b.Y-rectSize*1.2, b.X-rectSize, b.Y+rectSize*1.2, b.X+rectSize, b.Y, b.PlayColor)
		return
	}
	// Два прямоугольника (pause)
	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	vector.DrawFilledRect(screen, b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
	vector.DrawFilledRect(screen, b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
}

func (b *PauseButton) IsClicked(mx, my float32) bool {
	dx, dy := mx-b.X, my-b.Y
	return dx*dx+dy*dy <= b.Size*b.Size*2
}

func (b *PauseButton) SetPaused(paused bool) {
	if b.IsPaused == paused {
		return
	}
	b.IsPaused = paused
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}
