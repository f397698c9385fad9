// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       image.Rectangle
	Text       string
	TextColor  color.Color
	BgColor    color.Color
	HoverColor color.Color
	Font       font.Face
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, label string, face font.Face) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  color.Black,
		BgColor:    color.RGBA{200, 200, 200, 255},
		HoverColor: color.RGBA{150, 150, 150, 255},
		Font:       face,
	}
}

// Contains проверяет, попадает ли точка в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку.
func (b *Button) Draw(screen *ebiten.Image, mouseX, mouseY int) {
	bg := b.BgColor
	if b.Contains(mouseX, mouseY) {
		bg = b.HoverColor
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{80, 80, 80, 255}, false)

	bounds := text.BoundString(b.Font, b.Text)
	tx := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Text, b.Font, tx, ty, b.TextColor)
}
