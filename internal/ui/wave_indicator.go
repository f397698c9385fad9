// internal/ui/wave_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator отображает номер раунда римскими цифрами и прогресс волн.
type WaveIndicator struct {
	X, Y         int
	Color        color.Color
	OutlineColor color.Color
	font         font.Face
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y int, face font.Face) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        color.RGBA{120, 180, 255, 255},
		OutlineColor: color.White,
		font:         face,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, round, started, total int, nextIn float64) {
	if round <= 0 {
		return
	}
	title := "Round " + toRoman(round)
	// Обводка в один пиксель
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		text.Draw(screen, title, i.font, i.X+d[0], i.Y+d[1], i.OutlineColor)
	}
	text.Draw(screen, title, i.font, i.X, i.Y, i.Color)

	line := fmt.Sprintf("Wave %d/%d", started, total)
	if nextIn > 0 {
		line += fmt.Sprintf("  next in %.1fs", nextIn)
	}
	text.Draw(screen, line, i.font, i.X, i.Y+18, color.White)
}
